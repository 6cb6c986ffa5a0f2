package service

import (
	"sort"

	"github.com/Santini10/IC/internal/dto"
	"github.com/Santini10/IC/internal/model"
)

// ── 筛选引擎 ──
//
// 选择状态属于单次请求：由调用方传入，计算后随响应返回，不做任何全局保存。

// DefaultSelection 由全部记录推导默认选择（每个维度全选）
//
// 学期按排序键升序（同键按标签），其余维度按字母序；
// 校区、课程、录取方式、班次的空值不作为可选项。
func DefaultSelection(records []model.Record) model.FilterSelection {
	var sel model.FilterSelection
	for _, d := range model.Dimensions {
		seen := make(map[string]bool)
		values := []string{}
		for i := range records {
			v := records[i].Value(d)
			if d != model.DimSemester && v == "" {
				continue
			}
			if seen[v] {
				continue
			}
			seen[v] = true
			values = append(values, v)
		}
		sel.SetValues(d, values)
	}

	keys := semesterKeys(records)
	sortSemesters(sel.Semesters, keys)
	sort.Strings(sel.Campuses)
	sort.Strings(sel.Courses)
	sort.Strings(sel.Modalities)
	sort.Strings(sel.Shifts)
	return sel
}

// ResolveSelection 将请求合并到默认选择上
//
// 请求中未给出的维度取默认值；给出的维度只保留可选项内的值，并按可选项顺序排列。
func ResolveSelection(defaults model.FilterSelection, req *dto.FilterRequest) model.FilterSelection {
	if req == nil {
		return defaults.Clone()
	}

	out := defaults.Clone()
	for _, d := range model.Dimensions {
		requested := req.Field(d)
		if requested == nil {
			continue
		}
		wanted := toSet(*requested)
		values := []string{}
		for _, v := range defaults.Values(d) {
			if wanted[v] {
				values = append(values, v)
			}
		}
		out.SetValues(d, values)
	}
	return out
}

// ResetSelection 恢复为默认选择
func ResetSelection(defaults model.FilterSelection) model.FilterSelection {
	return defaults.Clone()
}

// ApplyFilter 返回五个维度取值都在选择集合内的记录
//
// 只比较维度取值（精确匹配），不因人数或名额为 0 而排除记录。
func ApplyFilter(records []model.Record, sel model.FilterSelection) []model.Record {
	sets := make(map[model.Dimension]map[string]bool, len(model.Dimensions))
	for _, d := range model.Dimensions {
		sets[d] = toSet(sel.Values(d))
	}

	out := make([]model.Record, 0, len(records))
	for i := range records {
		if matches(&records[i], sets) {
			out = append(out, records[i])
		}
	}
	return out
}

func matches(r *model.Record, sets map[model.Dimension]map[string]bool) bool {
	for _, d := range model.Dimensions {
		if !sets[d][r.Value(d)] {
			return false
		}
	}
	return true
}

// ── 辅助函数 ──

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// semesterKeys 学期标签 → 排序键，取每个标签第一次出现时的键
func semesterKeys(records []model.Record) map[string]model.OrderKey {
	keys := make(map[string]model.OrderKey)
	for i := range records {
		if _, ok := keys[records[i].Semester]; !ok {
			keys[records[i].Semester] = records[i].OrderKey
		}
	}
	return keys
}

func sortSemesters(labels []string, keys map[string]model.OrderKey) {
	sort.SliceStable(labels, func(i, j int) bool {
		ki, kj := keys[labels[i]], keys[labels[j]]
		if c := ki.Compare(kj); c != 0 {
			return c < 0
		}
		return labels[i] < labels[j]
	})
}
