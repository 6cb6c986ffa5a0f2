package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Santini10/IC/internal/dto"
	"github.com/Santini10/IC/internal/model"
	"github.com/Santini10/IC/internal/repository"
	"github.com/Santini10/IC/pkg/redis"
)

// ── 看板模块业务错误 ──

var (
	ErrDashboardNoRecords = errors.New("数据集中没有任何招生记录")
)

// 公告表不可用时的提示
const NoticesHint = "Adicione a planilha 'Editais' (com colunas: semestre e link) no Excel."

// 柱状图序列
const (
	SeriesEnrolled = "inscritos"
	SeriesRatio    = "cand_vaga"
	SeriesSeats    = "vagas"
)

var seriesMeta = []struct {
	key, title, color string
}{
	{SeriesEnrolled, "Total de Inscritos por Semestre", "#1f77b4"},
	{SeriesRatio, "Cand/Vaga por Semestre", "#ff7f0e"},
	{SeriesSeats, "Total de Vagas por Semestre", "#f2c94c"},
}

// Cache 看板结果缓存；*redis.Client 实现了该接口
type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) error
	SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error
}

// DashboardService 看板业务接口
type DashboardService interface {
	// Options 各维度可选值，即默认选择
	Options(ctx context.Context) (*dto.FilterOptions, error)
	// Build 按筛选请求计算完整看板；req 为 nil 时使用默认选择
	Build(ctx context.Context, req *dto.FilterRequest) (*dto.DashboardResponse, error)
	// Notices 已解析且可展示的公告
	Notices(ctx context.Context) (*dto.NoticeListResponse, error)
	// Semesters 按筛选请求计算学期汇总与合计，供导出使用
	Semesters(ctx context.Context, req *dto.FilterRequest) ([]SemesterAggregate, Totals, model.FilterSelection, error)
}

type dashboardService struct {
	repo     *repository.Repository
	cache    Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例，cache 可为 nil
func NewDashboardService(repo *repository.Repository, cache Cache, cacheTTL time.Duration, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// ────────────────────── Options ──────────────────────

func (s *dashboardService) Options(ctx context.Context) (*dto.FilterOptions, error) {
	records, err := s.repo.Record.List(ctx)
	if err != nil {
		return nil, err
	}
	sel := DefaultSelection(records)
	return &dto.FilterOptions{
		Semesters:  sel.Semesters,
		Campuses:   sel.Campuses,
		Courses:    sel.Courses,
		Modalities: sel.Modalities,
		Shifts:     sel.Shifts,
	}, nil
}

// ────────────────────── Build ──────────────────────

func (s *dashboardService) Build(ctx context.Context, req *dto.FilterRequest) (*dto.DashboardResponse, error) {
	records, err := s.repo.Record.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrDashboardNoRecords
	}

	sel := ResolveSelection(DefaultSelection(records), req)

	cacheKey := s.cacheKey(sel)
	if s.cache != nil {
		var cached dto.DashboardResponse
		err := s.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.logger.Warn("读取看板缓存失败，改为直接计算", zap.Error(err))
		}
	}

	keys, err := s.repo.Record.OrderKeys(ctx)
	if err != nil {
		return nil, err
	}

	filtered := ApplyFilter(records, sel)
	rows := AggregateBySemester(filtered, keys)
	totals := ComputeTotals(filtered)

	notices, err := s.Notices(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		DatasetVersion: s.repo.Version,
		Selection:      sel,
		RecordCount:    len(filtered),
		KPIs:           toKPIResponse(totals),
		Semesters:      toSemesterRows(rows),
		Series:         toSeries(rows),
		Notices:        *notices,
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, resp, s.cacheTTL); err != nil {
			s.logger.Warn("写入看板缓存失败", zap.Error(err))
		}
	}

	s.logger.Debug("看板计算完成",
		zap.Int("records", len(filtered)),
		zap.Int("semesters", len(rows)),
	)
	return resp, nil
}

// ────────────────────── Notices ──────────────────────

func (s *dashboardService) Notices(ctx context.Context) (*dto.NoticeListResponse, error) {
	notices, err := s.repo.Notice.List(ctx)
	if err != nil {
		return nil, err
	}
	keys, err := s.repo.Record.OrderKeys(ctx)
	if err != nil {
		return nil, err
	}

	resolved := ResolveNotices(notices, keys)
	visible := VisibleNotices(resolved)
	items := make([]dto.NoticeResponse, 0, len(visible))
	for _, n := range visible {
		items = append(items, dto.NoticeResponse{
			Semester: n.Semester,
			Link:     n.Link,
			Matched:  n.Matched,
		})
	}

	resp := &dto.NoticeListResponse{
		Available: s.repo.Notice.SheetErr() == nil && len(resolved) > 0,
		Items:     items,
	}
	if !resp.Available {
		resp.Hint = NoticesHint
	}
	return resp, nil
}

// ────────────────────── Semesters ──────────────────────

func (s *dashboardService) Semesters(ctx context.Context, req *dto.FilterRequest) ([]SemesterAggregate, Totals, model.FilterSelection, error) {
	records, err := s.repo.Record.List(ctx)
	if err != nil {
		return nil, Totals{}, model.FilterSelection{}, err
	}
	keys, err := s.repo.Record.OrderKeys(ctx)
	if err != nil {
		return nil, Totals{}, model.FilterSelection{}, err
	}

	sel := ResolveSelection(DefaultSelection(records), req)
	filtered := ApplyFilter(records, sel)
	return AggregateBySemester(filtered, keys), ComputeTotals(filtered), sel, nil
}

// ── 辅助函数 ──

// cacheKey 数据集版本 + 规范化后的选择（每个维度排序后拼接）
func (s *dashboardService) cacheKey(sel model.FilterSelection) string {
	var b strings.Builder
	b.WriteString(s.repo.Version)
	for _, d := range model.Dimensions {
		values := append([]string{}, sel.Values(d)...)
		sort.Strings(values)
		b.WriteString("|")
		b.WriteString(string(d))
		b.WriteString("=")
		b.WriteString(strings.Join(values, "\x1f"))
	}
	sum := sha256.Sum256([]byte(b.String()))
	return "dashboard:" + hex.EncodeToString(sum[:])
}

func toKPIResponse(t Totals) dto.KPIResponse {
	return dto.KPIResponse{
		TotalSeats:    t.Seats,
		TotalEnrolled: t.Enrolled,
		Ratio:         t.Ratio,
		SeatsLabel:    FormatThousands(t.Seats),
		EnrolledLabel: FormatThousands(t.Enrolled),
		RatioLabel:    FormatRatioKPI(t.Ratio),
	}
}

func toSemesterRows(rows []SemesterAggregate) []dto.SemesterRow {
	out := make([]dto.SemesterRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SemesterRow{
			Semester: r.Semester,
			OrderKey: r.OrderKey,
			Enrolled: r.SumEnrolled,
			Seats:    r.SumSeats,
			Ratio:    r.Ratio,
		})
	}
	return out
}

func toSeries(rows []SemesterAggregate) []dto.ChartSeries {
	series := make([]dto.ChartSeries, 0, len(seriesMeta))
	for _, m := range seriesMeta {
		bars := make([]dto.ChartBar, 0, len(rows))
		for _, r := range rows {
			bar := dto.ChartBar{Semester: r.Semester}
			switch m.key {
			case SeriesEnrolled:
				bar.Value = float64(r.SumEnrolled)
				bar.Label = FormatMil(r.SumEnrolled)
			case SeriesRatio:
				bar.Value = r.Ratio
				bar.Label = FormatRatioLabel(r.Ratio)
			case SeriesSeats:
				bar.Value = float64(r.SumSeats)
				bar.Label = FormatMil(r.SumSeats)
			}
			bars = append(bars, bar)
		}
		series = append(series, dto.ChartSeries{Key: m.key, Title: m.title, Color: m.color, Bars: bars})
	}
	return series
}
