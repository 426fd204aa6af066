package service

import (
	"context"
	"fmt"
	"io"

	"socialblog/internal/config"
	"socialblog/internal/models"
	"socialblog/internal/repository"
	"socialblog/internal/storage"
)

type CreatePostRequest struct {
	AuthorID  string
	Text      string
	GroupID   *string
	ImageName string
	Image     io.Reader
	ImageSize int64
}

type UpdatePostRequest struct {
	PostID    string
	AuthorID  string
	Text      string
	GroupID   *string
	ImageName string
	Image     io.Reader
	ImageSize int64
}

type PostService interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, req UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID string) error
}

type postService struct {
	postRepo repository.PostRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewPostService(postRepo repository.PostRepository, storage storage.Storage, cfg *config.Config) PostService {
	return &postService{
		postRepo: postRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

func (p *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		AuthorID: req.AuthorID,
		Text:     req.Text,
		GroupID:  req.GroupID,
	}

	if req.Image != nil {
		objectName, err := p.storage.UploadImage(ctx, req.ImageName, req.Image, req.ImageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to store post image: %w", err)
		}
		post.ImagePath = &objectName
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		if post.ImagePath != nil {
			_ = p.storage.DeleteImage(ctx, *post.ImagePath)
		}
		return nil, err
	}

	return post, nil
}

// UpdatePost rewrites text and group of an existing post. The author is
// part of the WHERE clause so a stale request can never move a post to
// another author. A newly uploaded image replaces the old object.
func (p *postService) UpdatePost(ctx context.Context, req UpdatePostRequest) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	oldImage := post.ImagePath
	post.Text = req.Text
	post.GroupID = req.GroupID

	if req.Image != nil {
		objectName, err := p.storage.UploadImage(ctx, req.ImageName, req.Image, req.ImageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to store post image: %w", err)
		}
		post.ImagePath = &objectName
	}

	post.AuthorID = req.AuthorID
	if err := p.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	if req.Image != nil && oldImage != nil {
		_ = p.storage.DeleteImage(ctx, *oldImage)
	}

	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, postID string) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := p.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	if post.ImagePath != nil {
		// Best effort: the orphaned object is harmless.
		_ = p.storage.DeleteImage(ctx, *post.ImagePath)
	}

	return nil
}
