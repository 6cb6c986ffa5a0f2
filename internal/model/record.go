package model

// Record 主表中的一行招生数据（第一个工作表）
type Record struct {
	Semester string            `json:"semestre"`
	Campus   string            `json:"campus"`
	Course   string            `json:"curso"`
	Modality string            `json:"modalidade"`
	Shift    string            `json:"turno"`
	Enrolled int               `json:"inscritos"`
	Seats    int               `json:"vagas"`
	OrderKey OrderKey          `json:"ordem"`           // 由 Semester 派生，仅加载时计算
	Extra    map[string]string `json:"extra,omitempty"` // 其余列原样透传
}

// Value 返回记录在指定维度上的取值
func (r *Record) Value(d Dimension) string {
	switch d {
	case DimSemester:
		return r.Semester
	case DimCampus:
		return r.Campus
	case DimCourse:
		return r.Course
	case DimModality:
		return r.Modality
	case DimShift:
		return r.Shift
	}
	return ""
}

// Notice 公告（Edital）表中的一行
type Notice struct {
	Semester string `json:"semestre"`
	Link     string `json:"link"`
}
