package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Santini10/IC/internal/dto"
)

// ── 导出模块业务错误 ──

var (
	ErrExportUnsupportedFormat = errors.New("不支持的导出格式")
	ErrExportGenerateFail      = errors.New("生成导出文件失败")
)

// 导出格式
const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"
)

// ExportFile 导出结果
type ExportFile struct {
	Filename    string
	ContentType string
	Data        *bytes.Buffer
}

// ExportService 导出业务接口
//
// 导出内容为当前筛选下的学期汇总表，外加一行合计。
// 以 bytes.Buffer 返回，由 Handler 层设置下载响应头。
type ExportService interface {
	ExportSemesters(ctx context.Context, req *dto.FilterRequest, format string) (*ExportFile, error)
}

type exportService struct {
	dashboard DashboardService
	logger    *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(dashboard DashboardService, logger *zap.Logger) ExportService {
	return &exportService{dashboard: dashboard, logger: logger}
}

// semesterExportRow CSV 行；比值按指标卡格式输出
type semesterExportRow struct {
	Semester string `csv:"Semestre"`
	Enrolled int    `csv:"Inscritos"`
	Seats    int    `csv:"Vagas"`
	Ratio    string `csv:"Cand/Vaga"`
}

// ═══════════════════════════════════════════════════════════
// ExportSemesters 导出学期汇总
// ═══════════════════════════════════════════════════════════
//
// 表头：Semestre | Inscritos | Vagas | Cand/Vaga
// 最后一行为 Total。

func (s *exportService) ExportSemesters(ctx context.Context, req *dto.FilterRequest, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatXLSX
	}
	if format != ExportFormatXLSX && format != ExportFormatCSV {
		return nil, fmt.Errorf("%w: %s", ErrExportUnsupportedFormat, format)
	}

	aggs, totals, _, err := s.dashboard.Semesters(ctx, req)
	if err != nil {
		return nil, err
	}

	rows := make([]semesterExportRow, 0, len(aggs)+1)
	for _, a := range aggs {
		rows = append(rows, semesterExportRow{
			Semester: a.Semester,
			Enrolled: a.SumEnrolled,
			Seats:    a.SumSeats,
			Ratio:    FormatRatioKPI(a.Ratio),
		})
	}
	rows = append(rows, semesterExportRow{
		Semester: "Total",
		Enrolled: totals.Enrolled,
		Seats:    totals.Seats,
		Ratio:    FormatRatioKPI(totals.Ratio),
	})

	var buf *bytes.Buffer
	switch format {
	case ExportFormatCSV:
		buf, err = writeSemestersCSV(rows)
	default:
		buf, err = writeSemestersXLSX(rows)
	}
	if err != nil {
		s.logger.Error("生成导出文件失败", zap.String("format", format), zap.Error(err))
		return nil, ErrExportGenerateFail
	}

	file := &ExportFile{
		Filename: "cand_vaga_por_semestre." + format,
		Data:     buf,
	}
	if format == ExportFormatCSV {
		file.ContentType = contentTypeCSV
	} else {
		file.ContentType = contentTypeXLSX
	}
	return file, nil
}

// ── CSV ──

func writeSemestersCSV(rows []semesterExportRow) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	w.Comma = ';'
	if err := gocsv.MarshalCSV(&rows, w); err != nil {
		return nil, err
	}
	return buf, nil
}

// ── XLSX ──

func writeSemestersXLSX(rows []semesterExportRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Semestres"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "D", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1f77b4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	totalStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})

	headers := []string{"Semestre", "Inscritos", "Vagas", "Cand/Vaga"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheetName, "A1", cell(colName(len(headers)-1), 1), headerStyle)

	row := 2
	for _, r := range rows {
		f.SetCellValue(sheetName, cell("A", row), r.Semester)
		f.SetCellValue(sheetName, cell("B", row), r.Enrolled)
		f.SetCellValue(sheetName, cell("C", row), r.Seats)
		f.SetCellValue(sheetName, cell("D", row), r.Ratio)
		row++
	}
	// 合计行加粗
	last := row - 1
	f.SetCellStyle(sheetName, cell("A", last), cell("D", last), totalStyle)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
