package repository

import (
	"context"

	"github.com/Santini10/IC/internal/model"
)

// RecordRepository 招生记录只读访问接口
type RecordRepository interface {
	List(ctx context.Context) ([]model.Record, error)
	// OrderKeys 返回 学期标签 → 排序键 的映射，加载时一次性计算
	OrderKeys(ctx context.Context) (map[string]model.OrderKey, error)
	Count(ctx context.Context) (int, error)
}

// recordRepo RecordRepository 的内存实现
type recordRepo struct {
	records []model.Record
	keys    map[string]model.OrderKey
}

// NewRecordRepo 创建 RecordRepository 实例
func NewRecordRepo(records []model.Record) RecordRepository {
	keys := make(map[string]model.OrderKey)
	for _, r := range records {
		if _, ok := keys[r.Semester]; !ok {
			keys[r.Semester] = r.OrderKey
		}
	}
	return &recordRepo{records: records, keys: keys}
}

func (r *recordRepo) List(ctx context.Context) ([]model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]model.Record, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *recordRepo) OrderKeys(ctx context.Context) (map[string]model.OrderKey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[string]model.OrderKey, len(r.keys))
	for k, v := range r.keys {
		out[k] = v
	}
	return out, nil
}

func (r *recordRepo) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(r.records), nil
}
