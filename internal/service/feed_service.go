package service

import (
	"context"

	"socialblog/internal/models"
	"socialblog/internal/repository"
)

// FeedService composes the ordered post lists behind every feed page.
// All lists come back newest-first with author and group resolved.
type FeedService interface {
	Global(ctx context.Context) ([]models.Post, error)
	Group(ctx context.Context, slug string) (*models.Group, []models.Post, error)
	Profile(ctx context.Context, username string) (*models.User, []models.Post, error)
	Subscriptions(ctx context.Context, userID string) ([]models.Post, error)
}

type feedService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

func NewFeedService(postRepo repository.PostRepository, groupRepo repository.GroupRepository, userRepo repository.UserRepository) FeedService {
	return &feedService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

func (s *feedService) Global(ctx context.Context) ([]models.Post, error) {
	return s.postRepo.ListAll(ctx)
}

// Group resolves the slug first; an unknown slug surfaces as
// repository.ErrNotFound.
func (s *feedService) Group(ctx context.Context, slug string) (*models.Group, []models.Post, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	posts, err := s.postRepo.ListByGroup(ctx, group.GroupID)
	if err != nil {
		return nil, nil, err
	}

	return group, posts, nil
}

func (s *feedService) Profile(ctx context.Context, username string) (*models.User, []models.Post, error) {
	author, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	posts, err := s.postRepo.ListByAuthor(ctx, author.UserID)
	if err != nil {
		return nil, nil, err
	}

	return author, posts, nil
}

func (s *feedService) Subscriptions(ctx context.Context, userID string) ([]models.Post, error) {
	return s.postRepo.ListBySubscriber(ctx, userID)
}
