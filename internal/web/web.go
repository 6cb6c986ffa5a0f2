package web

import (
	"embed"
	"html/template"
	"net/url"

	"github.com/Santini10/IC/config"
	"github.com/Santini10/IC/internal/dto"
	"github.com/Santini10/IC/internal/model"
)

// DashboardTemplate 看板页面模板名
const DashboardTemplate = "dashboard.html"

//go:embed templates/*.html
var templateFS embed.FS

// Templates 解析内嵌模板，模板有误属于编译期问题，直接 panic
func Templates() *template.Template {
	return template.Must(
		template.New("").Funcs(template.FuncMap{
			"selected": contains,
		}).ParseFS(templateFS, "templates/*.html"),
	)
}

// ── 页面视图模型 ──

// Filter 一个多选筛选框
type Filter struct {
	Name     string // 查询参数名
	Label    string
	Options  []string
	Selected []string
}

// Bar 柱状图中的一根柱，Height 为相对最高柱的百分比
type Bar struct {
	Semester string
	Label    string
	Height   float64
}

// Chart 一张柱状图
type Chart struct {
	Title string
	Color string
	Bars  []Bar
}

// Page 看板页面数据
type Page struct {
	PageTitle string
	Title     string
	Subtitle  string
	HasLogo   bool

	Filters []Filter
	KPIs    dto.KPIResponse
	Charts  []Chart
	Notices dto.NoticeListResponse

	RecordCount int
	ExportXLSX  template.URL
	ExportCSV   template.URL
}

var filterLabels = map[model.Dimension]string{
	model.DimSemester: "Semestre",
	model.DimCampus:   "Campus",
	model.DimCourse:   "Curso",
	model.DimModality: "Modalidade",
	model.DimShift:    "Turno",
}

// NewPage 由看板结果组装页面数据
func NewPage(cfg *config.DashboardConfig, hasLogo bool, opts *dto.FilterOptions, d *dto.DashboardResponse) Page {
	options := model.FilterSelection{
		Semesters:  opts.Semesters,
		Campuses:   opts.Campuses,
		Courses:    opts.Courses,
		Modalities: opts.Modalities,
		Shifts:     opts.Shifts,
	}

	p := Page{
		PageTitle:   cfg.PageTitle,
		Title:       cfg.Title,
		Subtitle:    cfg.Subtitle,
		HasLogo:     hasLogo,
		KPIs:        d.KPIs,
		Notices:     d.Notices,
		RecordCount: d.RecordCount,
		ExportXLSX:  exportURL(d.Selection, "xlsx"),
		ExportCSV:   exportURL(d.Selection, "csv"),
	}

	for _, dim := range model.Dimensions {
		p.Filters = append(p.Filters, Filter{
			Name:     string(dim),
			Label:    filterLabels[dim],
			Options:  options.Values(dim),
			Selected: d.Selection.Values(dim),
		})
	}

	for _, s := range d.Series {
		p.Charts = append(p.Charts, newChart(s))
	}
	return p
}

// SelectionQuery 将选择编码为查询参数（含 aplicado=1）
func SelectionQuery(sel model.FilterSelection) url.Values {
	q := url.Values{}
	q.Set("aplicado", "1")
	for _, dim := range model.Dimensions {
		for _, v := range sel.Values(dim) {
			q.Add(string(dim), v)
		}
	}
	return q
}

// exportURL 导出链接，携带当前筛选
func exportURL(sel model.FilterSelection, format string) template.URL {
	q := SelectionQuery(sel)
	q.Set("format", format)
	return template.URL("/api/v1/export/semesters?" + q.Encode())
}

func newChart(s dto.ChartSeries) Chart {
	top := 0.0
	for _, b := range s.Bars {
		if b.Value > top {
			top = b.Value
		}
	}

	c := Chart{Title: s.Title, Color: s.Color}
	for _, b := range s.Bars {
		h := 0.0
		if top > 0 {
			h = b.Value / top * 100
		}
		c.Bars = append(c.Bars, Bar{Semester: b.Semester, Label: b.Label, Height: h})
	}
	return c
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
