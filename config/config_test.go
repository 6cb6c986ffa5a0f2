package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("期望 port=8080，实际=%d", cfg.Server.Port)
	}
	if cfg.Data.WorkbookPath != "dados_ifes.xlsx" {
		t.Errorf("期望 workbook_path=dados_ifes.xlsx，实际=%s", cfg.Data.WorkbookPath)
	}
	if cfg.Data.NoticesSheet != "Editais" {
		t.Errorf("期望 notices_sheet=Editais，实际=%s", cfg.Data.NoticesSheet)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("期望 cache.ttl=5m，实际=%s", cfg.Cache.TTL)
	}
	if cfg.Redis.Enabled {
		t.Error("Redis 默认应关闭")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PAINEL_SERVER_PORT", "9090")
	t.Setenv("PAINEL_DATA_WORKBOOK_PATH", "/srv/planilha.xlsx")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("期望 port=9090，实际=%d", cfg.Server.Port)
	}
	if cfg.Data.WorkbookPath != "/srv/planilha.xlsx" {
		t.Errorf("期望环境变量覆盖 workbook_path，实际=%s", cfg.Data.WorkbookPath)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "painel.yaml")
	content := "data:\n  notices_sheet: Avisos\nrate_limit:\n  limit: 10\n  window: 30s\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Data.NoticesSheet != "Avisos" {
		t.Errorf("期望 notices_sheet=Avisos，实际=%s", cfg.Data.NoticesSheet)
	}
	if cfg.RateLimit.Limit != 10 || cfg.RateLimit.Window != 30*time.Second {
		t.Errorf("期望 rate_limit=10/30s，实际=%d/%s", cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Server:    ServerConfig{Port: 8080},
			Data:      DataConfig{WorkbookPath: "dados.xlsx", NoticesSheet: "Editais"},
			RateLimit: RateLimitConfig{Limit: 10, Window: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"有效配置", func(c *Config) {}, false},
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }, true},
		{"工作簿路径为空", func(c *Config) { c.Data.WorkbookPath = "  " }, true},
		{"公告表名为空", func(c *Config) { c.Data.NoticesSheet = "" }, true},
		{"限流窗口无效", func(c *Config) { c.RateLimit.Window = 0 }, true},
		{"关闭限流时窗口可为 0", func(c *Config) { c.RateLimit.Limit = 0; c.RateLimit.Window = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("期望 wantErr=%v，实际 err=%v", tt.wantErr, err)
			}
		})
	}
}
