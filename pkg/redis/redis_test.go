package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Santini10/IC/config"
)

// 端口 1 上没有 Redis，用于验证失败路径
const unreachableAddr = "127.0.0.1:1"

func newUnreachableClient() *Client {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        unreachableAddr,
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	return &Client{rdb: rdb, logger: zap.NewNop()}
}

func TestNewClient_Unreachable(t *testing.T) {
	_, err := NewClient(&config.RedisConfig{Addr: unreachableAddr}, zap.NewNop())
	if err == nil {
		t.Fatal("无法连接时 NewClient 应返回错误")
	}
}

func TestSetJSON_ZeroTTLSkipsWrite(t *testing.T) {
	c := newUnreachableClient()
	defer c.Close()

	if err := c.SetJSON(context.Background(), "k", map[string]int{"a": 1}, 0); err != nil {
		t.Errorf("ttl=0 时不应访问 Redis，实际 err=%v", err)
	}
}

func TestGetJSON_ConnectionErrorIsNotCacheMiss(t *testing.T) {
	c := newUnreachableClient()
	defer c.Close()

	var dst map[string]int
	err := c.GetJSON(context.Background(), "k", &dst)
	if err == nil || errors.Is(err, ErrCacheMiss) {
		t.Errorf("连接失败应返回真实错误而非缓存未命中，实际 %v", err)
	}
}
