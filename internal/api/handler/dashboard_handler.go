package handler

import (
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Santini10/IC/config"
	"github.com/Santini10/IC/internal/dto"
	"github.com/Santini10/IC/internal/service"
	"github.com/Santini10/IC/internal/web"
	"github.com/Santini10/IC/pkg/response"
)

// DashboardHandler 看板模块 HTTP 处理器
type DashboardHandler struct {
	dashboardSvc service.DashboardService
	page         config.DashboardConfig
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashboardSvc service.DashboardService, page config.DashboardConfig) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc, page: page}
}

// Page 看板页面
// GET /
func (h *DashboardHandler) Page(c *gin.Context) {
	ctx := c.Request.Context()

	opts, err := h.dashboardSvc.Options(ctx)
	if err != nil {
		c.String(http.StatusInternalServerError, "Erro interno do servidor")
		return
	}
	resp, err := h.dashboardSvc.Build(ctx, bindFilterQuery(c))
	if err != nil {
		if errors.Is(err, service.ErrDashboardNoRecords) {
			c.String(http.StatusNotFound, "Nenhum dado disponível na planilha")
			return
		}
		c.String(http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	c.HTML(http.StatusOK, web.DashboardTemplate, web.NewPage(&h.page, h.hasLogo(), opts, resp))
}

// Logo 页面 logo，文件不存在时返回 404
// GET /logo
func (h *DashboardHandler) Logo(c *gin.Context) {
	if !h.hasLogo() {
		response.NotFound(c, response.CodeNotFound, "Logo não encontrado")
		return
	}
	c.File(h.page.LogoPath)
}

// GetOptions 各维度可选值
// GET /api/v1/filters
func (h *DashboardHandler) GetOptions(c *gin.Context) {
	opts, err := h.dashboardSvc.Options(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, opts)
}

// GetDashboard 按查询串筛选的看板数据
// GET /api/v1/dashboard?campus=Serra&turno=Noturno
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	resp, err := h.dashboardSvc.Build(c.Request.Context(), bindFilterQuery(c))
	if err != nil {
		h.handleDashboardError(c, err)
		return
	}
	response.OK(c, resp)
}

// PostDashboard 按 JSON 请求体筛选的看板数据
// POST /api/v1/dashboard
func (h *DashboardHandler) PostDashboard(c *gin.Context) {
	var req dto.FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 空请求体等同于默认选择
		if !errors.Is(err, io.EOF) {
			handleBindError(c, err)
			return
		}
	}

	resp, err := h.dashboardSvc.Build(c.Request.Context(), &req)
	if err != nil {
		h.handleDashboardError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetNotices 公告列表
// GET /api/v1/notices
func (h *DashboardHandler) GetNotices(c *gin.Context) {
	notices, err := h.dashboardSvc.Notices(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, notices)
}

func (h *DashboardHandler) hasLogo() bool {
	if h.page.LogoPath == "" {
		return false
	}
	info, err := os.Stat(h.page.LogoPath)
	return err == nil && !info.IsDir()
}

func (h *DashboardHandler) handleDashboardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDashboardNoRecords):
		response.NotFound(c, response.CodeDashboardNoData, "Nenhum dado disponível na planilha")
	default:
		response.InternalError(c)
	}
}
