package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Santini10/IC/config"
	"github.com/Santini10/IC/internal/api/handler"
	"github.com/Santini10/IC/internal/api/middleware"
	"github.com/Santini10/IC/internal/web"
	"github.com/Santini10/IC/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时不限流
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.SetHTMLTemplate(web.Templates())

	var limiter middleware.RateLimiter
	if rdb != nil {
		limiter = rdb
	}

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── 页面 ──
	r.GET("/", h.Dashboard.Page)
	r.GET("/logo", h.Dashboard.Logo)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(limiter, cfg.RateLimit.Limit, cfg.RateLimit.Window, logger))
	{
		v1.GET("/filters", h.Dashboard.GetOptions)
		v1.GET("/dashboard", h.Dashboard.GetDashboard)
		v1.POST("/dashboard", h.Dashboard.PostDashboard)
		v1.GET("/notices", h.Dashboard.GetNotices)

		// 导出模块
		export := v1.Group("/export")
		{
			export.GET("/semesters", h.Export.ExportSemesters)
		}
	}

	return r
}
