package service

import (
	"context"

	"socialblog/internal/models"
	"socialblog/internal/repository"
)

type CommentService interface {
	AddComment(ctx context.Context, postID, authorID, text string) (*models.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment attaches a comment to an existing post. The post lookup
// comes first so commenting on an unknown id is ErrNotFound, not a
// dangling row.
func (s *commentService) AddComment(ctx context.Context, postID, authorID, text string) (*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   post.PostID,
		AuthorID: authorID,
		Text:     text,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}
