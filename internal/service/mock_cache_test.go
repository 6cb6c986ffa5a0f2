package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Santini10/IC/pkg/redis"
)

// ── Mock Cache ──

type mockCache struct {
	data   map[string][]byte
	gets   int
	sets   int
	getErr error
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) GetJSON(_ context.Context, key string, dst interface{}) error {
	m.gets++
	if m.getErr != nil {
		return m.getErr
	}
	b, ok := m.data[key]
	if !ok {
		return redis.ErrCacheMiss
	}
	return json.Unmarshal(b, dst)
}

func (m *mockCache) SetJSON(_ context.Context, key string, v interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.sets++
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

var errCacheDown = errors.New("connection refused")
