package repository

import (
	"context"

	"github.com/Santini10/IC/internal/model"
)

// NoticeRepository 公告只读访问接口
type NoticeRepository interface {
	List(ctx context.Context) ([]model.Notice, error)
	// SheetErr 公告表不可用的原因，可用时为 nil
	SheetErr() error
}

type noticeRepo struct {
	notices []model.Notice
	err     error
}

// NewNoticeRepo 创建 NoticeRepository 实例
func NewNoticeRepo(notices []model.Notice, sheetErr error) NoticeRepository {
	return &noticeRepo{notices: notices, err: sheetErr}
}

func (r *noticeRepo) List(ctx context.Context) ([]model.Notice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]model.Notice, len(r.notices))
	copy(out, r.notices)
	return out, nil
}

func (r *noticeRepo) SheetErr() error {
	return r.err
}
