package service

import (
	"sort"
	"strings"

	"github.com/Santini10/IC/internal/model"
)

// ResolvedNotice 关联排序键并规范化链接后的公告
type ResolvedNotice struct {
	Semester string
	Link     string
	OrderKey model.OrderKey
	// Matched 学期出现在主表中；未匹配的公告排在所有已匹配公告之后
	Matched bool
}

// Visible 空链接保留在集合中，但不展示
func (n ResolvedNotice) Visible() bool {
	return n.Link != ""
}

// NormalizeLink 去空格，缺少 http/https 前缀时补 https://
func NormalizeLink(raw string) string {
	link := strings.TrimSpace(raw)
	if link == "" {
		return ""
	}
	lower := strings.ToLower(link)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return link
	}
	return "https://" + link
}

// ResolveNotices 关联排序键、按 (学期, 原始链接) 去重、规范化链接并排序
//
// 去重比较去空格后的原始链接，"x.com" 与 "https://x.com" 视为两条公告。
func ResolveNotices(notices []model.Notice, keys map[string]model.OrderKey) []ResolvedNotice {
	type pair struct{ semester, link string }
	seen := make(map[pair]bool, len(notices))
	out := make([]ResolvedNotice, 0, len(notices))

	for _, n := range notices {
		semester := strings.TrimSpace(n.Semester)
		raw := strings.TrimSpace(n.Link)
		p := pair{semester, raw}
		if seen[p] {
			continue
		}
		seen[p] = true
		link := NormalizeLink(raw)

		key, ok := keys[semester]
		out = append(out, ResolvedNotice{
			Semester: semester,
			Link:     link,
			OrderKey: key,
			Matched:  ok,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Matched != out[j].Matched {
			return out[i].Matched
		}
		return out[i].OrderKey.Less(out[j].OrderKey)
	})
	return out
}

// VisibleNotices 过滤掉空链接
func VisibleNotices(resolved []ResolvedNotice) []ResolvedNotice {
	out := make([]ResolvedNotice, 0, len(resolved))
	for _, n := range resolved {
		if n.Visible() {
			out = append(out, n)
		}
	}
	return out
}
