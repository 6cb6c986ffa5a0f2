package service

import (
	"sort"

	"github.com/Santini10/IC/internal/model"
)

// SemesterAggregate 单个学期的汇总行，每次筛选后重新计算
type SemesterAggregate struct {
	Semester    string
	OrderKey    model.OrderKey
	SumEnrolled int
	SumSeats    int
	Ratio       float64
}

// Totals 整个筛选结果的合计
type Totals struct {
	Enrolled int
	Seats    int
	Ratio    float64
}

// Ratio 报名人数 / 名额；名额为 0 时定义为 0
func Ratio(enrolled, seats int) float64 {
	if seats == 0 {
		return 0
	}
	return float64(enrolled) / float64(seats)
}

// AggregateBySemester 按学期分组求和，结果按排序键升序
//
// keys 为加载时计算好的 学期 → 排序键 映射；缺失时使用记录自带的键。
func AggregateBySemester(records []model.Record, keys map[string]model.OrderKey) []SemesterAggregate {
	index := make(map[string]int)
	rows := []SemesterAggregate{}

	for i := range records {
		r := &records[i]
		pos, ok := index[r.Semester]
		if !ok {
			key, found := keys[r.Semester]
			if !found {
				key = r.OrderKey
			}
			pos = len(rows)
			index[r.Semester] = pos
			rows = append(rows, SemesterAggregate{Semester: r.Semester, OrderKey: key})
		}
		rows[pos].SumEnrolled += r.Enrolled
		rows[pos].SumSeats += r.Seats
	}

	for i := range rows {
		rows[i].Ratio = Ratio(rows[i].SumEnrolled, rows[i].SumSeats)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if c := rows[i].OrderKey.Compare(rows[j].OrderKey); c != 0 {
			return c < 0
		}
		return rows[i].Semester < rows[j].Semester
	})
	return rows
}

// ComputeTotals 不分组的整体合计
func ComputeTotals(records []model.Record) Totals {
	var t Totals
	for i := range records {
		t.Enrolled += records[i].Enrolled
		t.Seats += records[i].Seats
	}
	t.Ratio = Ratio(t.Enrolled, t.Seats)
	return t
}
