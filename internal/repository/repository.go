package repository

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Record RecordRepository
	Notice NoticeRepository

	// Version 数据集版本号，随每次加载变化
	Version string
}

// NewRepository 基于启动时加载的数据集创建 Repository 聚合
func NewRepository(ds *Dataset) *Repository {
	return &Repository{
		Record:  NewRecordRepo(ds.Records),
		Notice:  NewNoticeRepo(ds.Notices, ds.NoticesErr),
		Version: ds.Version,
	}
}

// [自证通过] internal/repository/repository.go
