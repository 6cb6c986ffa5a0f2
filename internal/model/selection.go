package model

// Dimension 筛选维度
type Dimension string

const (
	DimSemester Dimension = "semestre"
	DimCampus   Dimension = "campus"
	DimCourse   Dimension = "curso"
	DimModality Dimension = "modalidade"
	DimShift    Dimension = "turno"
)

// Dimensions 按界面顺序列出全部维度
var Dimensions = []Dimension{DimSemester, DimCampus, DimCourse, DimModality, DimShift}

// FilterSelection 五个维度各自允许的取值集合
//
// 属于单次请求的临时状态：由调用方显式传入传出，不保存在全局。
type FilterSelection struct {
	Semesters  []string `json:"semestres"`
	Campuses   []string `json:"campi"`
	Courses    []string `json:"cursos"`
	Modalities []string `json:"modalidades"`
	Shifts     []string `json:"turnos"`
}

// Values 返回维度 d 的取值列表
func (s *FilterSelection) Values(d Dimension) []string {
	switch d {
	case DimSemester:
		return s.Semesters
	case DimCampus:
		return s.Campuses
	case DimCourse:
		return s.Courses
	case DimModality:
		return s.Modalities
	case DimShift:
		return s.Shifts
	}
	return nil
}

// SetValues 替换维度 d 的取值列表
func (s *FilterSelection) SetValues(d Dimension, values []string) {
	switch d {
	case DimSemester:
		s.Semesters = values
	case DimCampus:
		s.Campuses = values
	case DimCourse:
		s.Courses = values
	case DimModality:
		s.Modalities = values
	case DimShift:
		s.Shifts = values
	}
}

// Clone 深拷贝
func (s FilterSelection) Clone() FilterSelection {
	var out FilterSelection
	for _, d := range Dimensions {
		values := s.Values(d)
		if values == nil {
			continue
		}
		out.SetValues(d, append([]string{}, values...))
	}
	return out
}
