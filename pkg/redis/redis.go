package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Santini10/IC/config"
)

// ErrCacheMiss 缓存未命中
var ErrCacheMiss = errors.New("缓存未命中")

// Client Redis 客户端封装
// 用于看板结果缓存与接口限流；连接失败时调用方以 nil 降级运行
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 看板缓存 ──

const cachePrefix = "painel:cache:"

// GetJSON 读取缓存并反序列化到 dst，未命中返回 ErrCacheMiss
func (c *Client) GetJSON(ctx context.Context, key string, dst interface{}) error {
	b, err := c.rdb.Get(ctx, cachePrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(b, dst)
}

// SetJSON 序列化 v 并写入缓存，ttl <= 0 时不写入
func (c *Client) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cachePrefix+key, b, ttl).Err()
}

// ── 滑动窗口限流 ──

// CheckRateLimit 在 window 内统计 key 的请求数，超过 limit 返回 false
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	windowStart := now.Add(-window).UnixMicro()

	pipe := c.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	count := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, goredis.Z{Score: float64(now.UnixMicro()), Member: uuid.NewString()})
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return count.Val() < int64(limit), nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
