package service

import (
	"socialblog/internal/config"
	"socialblog/internal/repository"
	"socialblog/internal/storage"
)

type Service struct {
	Feed    FeedService
	Post    PostService
	Comment CommentService
	Follow  FollowService
}

func NewService(repo *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Feed:    NewFeedService(repo.Post, repo.Group, repo.User),
		Post:    NewPostService(repo.Post, storage, cfg),
		Comment: NewCommentService(repo.Comment, repo.Post),
		Follow:  NewFollowService(repo.Follow, repo.User),
	}
}
