package service

import (
	"go.uber.org/zap"

	"github.com/aubrey-sherman/baby-bootcamp-be/config"
	"github.com/aubrey-sherman/baby-bootcamp-be/internal/repository"
	"github.com/aubrey-sherman/baby-bootcamp-be/pkg/jwt"
)

// Service aggregates all service interfaces.
type Service struct {
	Auth    AuthService
	Feeding FeedingService
	Export  ExportService
}

// NewService creates the Service aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(repo, jwtMgr, logger),
		Feeding: NewFeedingService(cfg.Schedule, repo, logger),
		Export:  NewExportService(repo, logger),
	}
}
