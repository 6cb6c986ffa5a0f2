package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Santini10/IC/config"
	"github.com/Santini10/IC/internal/dto"
	"github.com/Santini10/IC/internal/model"
)

func samplePage() Page {
	cfg := &config.DashboardConfig{PageTitle: "Painel", Title: "Título", Subtitle: "Sub"}
	opts := &dto.FilterOptions{
		Semesters:  []string{"2022/1", "2022/2"},
		Campuses:   []string{"Serra", "Vitória"},
		Courses:    []string{"ADS"},
		Modalities: []string{"Ampla"},
		Shifts:     []string{"Matutino"},
	}
	d := &dto.DashboardResponse{
		Selection: model.FilterSelection{
			Semesters:  []string{"2022/1", "2022/2"},
			Campuses:   []string{"Vitória"},
			Courses:    []string{"ADS"},
			Modalities: []string{"Ampla"},
			Shifts:     []string{"Matutino"},
		},
		KPIs: dto.KPIResponse{SeatsLabel: "150", EnrolledLabel: "450", RatioLabel: "3.00"},
		Series: []dto.ChartSeries{{
			Key: "inscritos", Title: "Total de Inscritos por Semestre", Color: "#1f77b4",
			Bars: []dto.ChartBar{
				{Semester: "2022/1", Value: 300, Label: "300"},
				{Semester: "2022/2", Value: 150, Label: "150"},
			},
		}},
		Notices: dto.NoticeListResponse{Hint: "Adicione a planilha"},
	}
	return NewPage(cfg, false, opts, d)
}

func TestNewPage(t *testing.T) {
	p := samplePage()

	if len(p.Filters) != 5 {
		t.Fatalf("期望 5 个筛选框，实际=%d", len(p.Filters))
	}
	if p.Filters[1].Name != "campus" || len(p.Filters[1].Selected) != 1 {
		t.Errorf("校区筛选框错误: %+v", p.Filters[1])
	}
	if len(p.Charts) != 1 || p.Charts[0].Bars[0].Height != 100 || p.Charts[0].Bars[1].Height != 50 {
		t.Errorf("柱高计算错误: %+v", p.Charts)
	}
	if !strings.Contains(string(p.ExportCSV), "format=csv") || !strings.Contains(string(p.ExportCSV), "campus=Vit") {
		t.Errorf("导出链接应携带筛选: %s", p.ExportCSV)
	}
}

func TestSelectionQuery(t *testing.T) {
	q := SelectionQuery(model.FilterSelection{Campuses: []string{"Serra", "Vitória"}, Shifts: []string{}})

	if q.Get("aplicado") != "1" {
		t.Error("查询串应包含 aplicado=1")
	}
	if got := q["campus"]; len(got) != 2 {
		t.Errorf("期望 2 个校区，实际 %v", got)
	}
	if _, ok := q["turno"]; ok {
		t.Error("空维度不应出现在查询串中")
	}
}

func TestTemplates_Render(t *testing.T) {
	tmpl := Templates()
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, DashboardTemplate, samplePage()); err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	html := buf.String()

	for _, want := range []string{"<title>Painel</title>", "Total de Inscritos por Semestre", "Limpar filtros", "3.00", "Adicione a planilha"} {
		if !strings.Contains(html, want) {
			t.Errorf("页面应包含 %q", want)
		}
	}
	if !strings.Contains(html, `<option value="Vitória" selected>`) {
		t.Error("已选择的校区应标记 selected")
	}
	if strings.Contains(html, `src="/logo"`) {
		t.Error("没有 logo 时不应渲染图片")
	}
}
