package service

import (
	"context"

	"socialblog/internal/models"
	"socialblog/internal/repository"
)

type FollowService interface {
	Follow(ctx context.Context, userID, authorUsername string) (*models.User, bool, error)
	Unfollow(ctx context.Context, userID, authorUsername string) (*models.User, error)
	IsFollowing(ctx context.Context, userID, authorID string) (bool, error)
	CountFollowers(ctx context.Context, authorID string) (int, error)
}

type followService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) FollowService {
	return &followService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates the subscription edge and reports whether one was
// created. Self-follow and an already existing edge are no-ops.
func (s *followService) Follow(ctx context.Context, userID, authorUsername string) (*models.User, bool, error) {
	author, err := s.userRepo.GetUserByUsername(ctx, authorUsername)
	if err != nil {
		return nil, false, err
	}

	if author.UserID == userID {
		return author, false, nil
	}

	exists, err := s.followRepo.Exists(ctx, userID, author.UserID)
	if err != nil {
		return nil, false, err
	}
	if exists {
		return author, false, nil
	}

	if err := s.followRepo.Create(ctx, userID, author.UserID); err != nil {
		return nil, false, err
	}

	return author, true, nil
}

func (s *followService) Unfollow(ctx context.Context, userID, authorUsername string) (*models.User, error) {
	author, err := s.userRepo.GetUserByUsername(ctx, authorUsername)
	if err != nil {
		return nil, err
	}

	if err := s.followRepo.Delete(ctx, userID, author.UserID); err != nil {
		return nil, err
	}

	return author, nil
}

func (s *followService) IsFollowing(ctx context.Context, userID, authorID string) (bool, error) {
	return s.followRepo.Exists(ctx, userID, authorID)
}

func (s *followService) CountFollowers(ctx context.Context, authorID string) (int, error) {
	return s.followRepo.CountByAuthor(ctx, authorID)
}
