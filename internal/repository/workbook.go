package repository

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	pkgerrors "github.com/Santini10/IC/pkg/errors"

	"github.com/Santini10/IC/internal/model"
)

// ── 工作簿加载错误 ──

var (
	ErrWorkbookEmpty         = errors.New("工作簿中没有任何工作表")
	ErrWorkbookNoHeader      = errors.New("主表缺少表头行")
	ErrWorkbookMissingColumn = errors.New("主表缺少必需列")
	ErrNoticesSheetMissing   = errors.New("公告工作表不存在")
)

// DefaultNoticesSheet 公告工作表默认名称
const DefaultNoticesSheet = "Editais"

// 主表必需列（表头去空格后按大小写、重音不敏感匹配）
const (
	colSemester = "Semestre"
	colCampus   = "Campus"
	colCourse   = "Curso"
	colModality = "Modalidade"
	colShift    = "Turno"
	colEnrolled = "Inscritos"
	colSeats    = "Vagas"
)

var requiredColumns = []string{colSemester, colCampus, colCourse, colModality, colShift, colEnrolled, colSeats}

// 公告表列名（去空格并转小写后匹配）
const (
	noticeColSemester = "semestre"
	noticeColLink     = "link"
)

// LoadOptions 加载选项
type LoadOptions struct {
	NoticesSheet string
}

// Dataset 启动时加载一次的只读数据集
type Dataset struct {
	Version  string // 每次加载生成，用作缓存命名空间
	Source   string
	LoadedAt time.Time
	Records  []model.Record
	Notices  []model.Notice

	// NoticesErr 公告表读取失败的原因；此时 Notices 为空集合，加载本身仍然成功
	NoticesErr error
}

// LoadWorkbook 打开磁盘上的 Excel 文件并加载数据集
func LoadWorkbook(path string, opts LoadOptions) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: 无法打开工作簿 %s: %v", pkgerrors.ErrDataContract, path, err)
	}
	defer file.Close()

	ds, err := ReadWorkbook(file, opts)
	if err != nil {
		return nil, err
	}
	ds.Source = path
	return ds, nil
}

// ReadWorkbook 从数据流加载数据集
//
// 主表（第一个工作表）的错误直接返回，属于启动级致命错误；
// 公告表的任何错误都只记录在 Dataset.NoticesErr 中。
func ReadWorkbook(reader io.Reader, opts LoadOptions) (*Dataset, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: 无法解析 Excel 文件: %v", pkgerrors.ErrDataContract, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %w", pkgerrors.ErrDataContract, ErrWorkbookEmpty)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: 读取主表失败: %v", pkgerrors.ErrDataContract, err)
	}
	records, err := parseRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pkgerrors.ErrDataContract, err)
	}

	sheetName := opts.NoticesSheet
	if sheetName == "" {
		sheetName = DefaultNoticesSheet
	}
	notices, noticesErr := readNotices(f, sheetName)
	if noticesErr != nil {
		notices = []model.Notice{}
	}

	return &Dataset{
		Version:    uuid.NewString(),
		LoadedAt:   time.Now(),
		Records:    records,
		Notices:    notices,
		NoticesErr: noticesErr,
	}, nil
}

// ────────────────────── 主表 ──────────────────────

func parseRecords(rows [][]string) ([]model.Record, error) {
	if len(rows) == 0 {
		return nil, ErrWorkbookNoHeader
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	index := make(map[string]int, len(requiredColumns))
	for _, name := range requiredColumns {
		index[name] = -1
	}
	for i, h := range header {
		key := headerKey(h)
		for _, name := range requiredColumns {
			if index[name] < 0 && key == headerKey(name) {
				index[name] = i
			}
		}
	}

	var missing []string
	for _, name := range requiredColumns {
		if index[name] < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrWorkbookMissingColumn, strings.Join(missing, ", "))
	}

	known := make(map[int]bool, len(index))
	for _, i := range index {
		known[i] = true
	}

	records := make([]model.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}

		rec := model.Record{
			Semester: cellAt(row, index[colSemester]),
			Campus:   cellAt(row, index[colCampus]),
			Course:   cellAt(row, index[colCourse]),
			Modality: cellAt(row, index[colModality]),
			Shift:    cellAt(row, index[colShift]),
			Enrolled: coerceCount(cellAt(row, index[colEnrolled])),
			Seats:    coerceCount(cellAt(row, index[colSeats])),
		}
		rec.OrderKey = model.OrderKeyOf(rec.Semester)

		for i, h := range header {
			if known[i] || h == "" {
				continue
			}
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[h] = cellAt(row, i)
		}

		records = append(records, rec)
	}

	return records, nil
}

// coerceCount 非数值或缺失记为 0，小数截断为整数，负数记为 0
func coerceCount(raw string) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	v = math.Trunc(v)
	if v <= 0 {
		return 0
	}
	if v >= math.MaxInt64 {
		return math.MaxInt
	}
	return int(v)
}

// ────────────────────── 公告表 ──────────────────────

func readNotices(f *excelize.File, sheetName string) ([]model.Notice, error) {
	idx, err := f.GetSheetIndex(sheetName)
	if err != nil {
		return nil, fmt.Errorf("查找公告工作表失败: %w", err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoticesSheetMissing, sheetName)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("读取公告工作表失败: %w", err)
	}
	return parseNotices(rows), nil
}

func parseNotices(rows [][]string) []model.Notice {
	notices := []model.Notice{}
	if len(rows) < 2 {
		return notices
	}

	semIdx, linkIdx := -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case noticeColSemester:
			if semIdx < 0 {
				semIdx = i
			}
		case noticeColLink:
			if linkIdx < 0 {
				linkIdx = i
			}
		}
	}

	for _, row := range rows[1:] {
		n := model.Notice{
			Semester: strings.TrimSpace(cellAt(row, semIdx)),
			Link:     strings.TrimSpace(cellAt(row, linkIdx)),
		}
		// 跳过全空行
		if n.Semester == "" && n.Link == "" {
			continue
		}
		notices = append(notices, n)
	}
	return notices
}

// ── 辅助函数 ──

// headerKey 表头比较键：去空格、去重音、转小写
func headerKey(h string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, strings.TrimSpace(h))
	if err != nil {
		s = strings.TrimSpace(h)
	}
	return strings.ToLower(s)
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
