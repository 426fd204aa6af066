package app

import (
	"go.uber.org/zap"

	"socialblog/internal/cache"
	"socialblog/internal/config"
	"socialblog/internal/database"
	"socialblog/internal/identity"
	"socialblog/internal/repository"
	"socialblog/internal/service"
	"socialblog/internal/storage"
)

// App wires configuration into the database, cache, object storage and
// the repository/service graph.
func App(cfg *config.Config, logger *zap.Logger) (*database.DB, *repository.Repository, *service.Service, *cache.RedisPageCache, *identity.Sessions) {
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		logger.Fatal("failed to initialize MinIO", zap.Error(err))
	}

	pageCache := cache.NewRedisPageCache(cfg)

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, minioClient)
	sessions := identity.NewSessions(cfg)

	return db, repo, services, pageCache, sessions
}
