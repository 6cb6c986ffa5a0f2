package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Santini10/IC/config"
	"github.com/Santini10/IC/internal/api/handler"
	"github.com/Santini10/IC/internal/api/router"
	"github.com/Santini10/IC/internal/repository"
	"github.com/Santini10/IC/internal/service"
	pkgerrors "github.com/Santini10/IC/pkg/errors"
	applogger "github.com/Santini10/IC/pkg/logger"
	"github.com/Santini10/IC/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load(os.Getenv("PAINEL_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("workbook", cfg.Data.WorkbookPath),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 加载工作簿（主表错误属于数据约定问题，直接退出）
	ds, err := repository.LoadWorkbook(cfg.Data.WorkbookPath, repository.LoadOptions{
		NoticesSheet: cfg.Data.NoticesSheet,
	})
	if err != nil {
		if errors.Is(err, pkgerrors.ErrDataContract) {
			logger.Fatal("工作簿不符合数据约定，请修正后重新启动",
				zap.String("path", cfg.Data.WorkbookPath),
				zap.Error(err),
			)
		}
		logger.Fatal("加载工作簿失败", zap.Error(err))
	}
	if ds.NoticesErr != nil {
		logger.Warn("公告表不可用，公告列表为空", zap.Error(ds.NoticesErr))
	}
	logger.Info("工作簿加载完成",
		zap.Int("records", len(ds.Records)),
		zap.Int("notices", len(ds.Notices)),
		zap.String("version", ds.Version),
	)

	// 4. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，看板缓存与限流将不可用", zap.Error(err))
			rdb = nil
		}
	}

	// 5. 依赖注入: Repository → Service → Handler
	var cache service.Cache
	if rdb != nil {
		cache = rdb
	}
	repo := repository.NewRepository(ds)
	svc := service.NewService(cfg, repo, cache, logger)
	h := handler.NewHandler(cfg, svc)

	// 6. 初始化路由
	engine := router.Setup(cfg, h, rdb, logger)

	// 7. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr), zap.String("base_url", cfg.Server.BaseURL))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 8. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
