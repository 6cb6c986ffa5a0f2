package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrOrderKeyFormat 学期标签不是 "年/期" 格式
var ErrOrderKeyFormat = errors.New("学期标签格式无效，期望 \"年/期\"")

// OrderKey 学期排序键 (年, 期)，按字典序比较
//
// 无法解析的标签统一映射为 (0,0)，排在最前；多个无效标签之间互相冲突属预期行为。
type OrderKey struct {
	Year   int `json:"ano"`
	Period int `json:"periodo"`
}

// ParseOrderKey 解析 "2022/1" 形式的学期标签
// 失败时返回 (0,0) 与错误，由调用方决定是否忽略
func ParseOrderKey(label string) (OrderKey, error) {
	parts := strings.Split(label, "/")
	if len(parts) != 2 {
		return OrderKey{}, fmt.Errorf("%w: %q", ErrOrderKeyFormat, label)
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return OrderKey{}, fmt.Errorf("%w: %q", ErrOrderKeyFormat, label)
	}
	period, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return OrderKey{}, fmt.Errorf("%w: %q", ErrOrderKeyFormat, label)
	}
	return OrderKey{Year: year, Period: period}, nil
}

// OrderKeyOf 同 ParseOrderKey，解析失败时直接返回 (0,0)
func OrderKeyOf(label string) OrderKey {
	key, _ := ParseOrderKey(label)
	return key
}

// Compare 返回 -1 / 0 / 1
func (k OrderKey) Compare(o OrderKey) int {
	switch {
	case k.Year < o.Year:
		return -1
	case k.Year > o.Year:
		return 1
	case k.Period < o.Period:
		return -1
	case k.Period > o.Period:
		return 1
	}
	return 0
}

// Less 是否排在 o 之前
func (k OrderKey) Less(o OrderKey) bool { return k.Compare(o) < 0 }

// IsZero 是否为无效标签的哨兵值 (0,0)
func (k OrderKey) IsZero() bool { return k == OrderKey{} }

func (k OrderKey) String() string {
	return fmt.Sprintf("%d/%d", k.Year, k.Period)
}
