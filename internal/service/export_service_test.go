package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Santini10/IC/internal/dto"
	"github.com/Santini10/IC/internal/model"
)

func setupTestExportService() ExportService {
	dashboard := setupTestDashboardService(endToEndRecords(), nil, nil, nil)
	return NewExportService(dashboard, zap.NewNop())
}

func TestExportService_XLSX(t *testing.T) {
	svc := setupTestExportService()

	file, err := svc.ExportSemesters(context.Background(), nil, "xlsx")
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if file.Filename != "cand_vaga_por_semestre.xlsx" {
		t.Errorf("文件名错误: %s", file.Filename)
	}
	if file.ContentType != contentTypeXLSX {
		t.Errorf("Content-Type 错误: %s", file.ContentType)
	}

	f, err := excelize.OpenReader(file.Data)
	if err != nil {
		t.Fatalf("导出结果应为合法的 xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Semestres")
	if err != nil {
		t.Fatalf("读取工作表失败: %v", err)
	}
	// 表头 + 2 个学期 + 合计
	if len(rows) != 4 {
		t.Fatalf("期望 4 行，实际=%d", len(rows))
	}
	if rows[0][0] != "Semestre" || rows[0][3] != "Cand/Vaga" {
		t.Errorf("表头错误: %v", rows[0])
	}
	if rows[1][0] != "2022/1" || rows[1][3] != "3.00" {
		t.Errorf("第一行错误: %v", rows[1])
	}
	if rows[3][0] != "Total" || rows[3][1] != "450" || rows[3][2] != "150" {
		t.Errorf("合计行错误: %v", rows[3])
	}
}

func TestExportService_CSV(t *testing.T) {
	svc := setupTestExportService()

	req := &dto.FilterRequest{}
	req.SetField(model.DimSemester, []string{"2022/2"})

	file, err := svc.ExportSemesters(context.Background(), req, "CSV")
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(file.Data.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("期望 3 行，实际=%d: %q", len(lines), file.Data.String())
	}
	if lines[0] != "Semestre;Inscritos;Vagas;Cand/Vaga" {
		t.Errorf("表头错误: %s", lines[0])
	}
	if lines[1] != "2022/2;150;50;3.00" {
		t.Errorf("数据行错误: %s", lines[1])
	}
	if lines[2] != "Total;150;50;3.00" {
		t.Errorf("合计行错误: %s", lines[2])
	}
}

func TestExportService_UnsupportedFormat(t *testing.T) {
	svc := setupTestExportService()

	_, err := svc.ExportSemesters(context.Background(), nil, "pdf")
	if !errors.Is(err, ErrExportUnsupportedFormat) {
		t.Errorf("期望 ErrExportUnsupportedFormat，实际: %v", err)
	}
}

func TestExportService_DefaultFormat(t *testing.T) {
	svc := setupTestExportService()

	file, err := svc.ExportSemesters(context.Background(), nil, "")
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if !strings.HasSuffix(file.Filename, ".xlsx") {
		t.Errorf("默认格式应为 xlsx: %s", file.Filename)
	}
}
