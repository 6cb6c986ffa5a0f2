package service

import (
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ── 数字格式化（巴西葡萄牙语习惯） ──

var ptBR = language.BrazilianPortuguese

// FormatThousands 千位分隔符为 "."：1234 → "1.234"
func FormatThousands(n int) string {
	return message.NewPrinter(ptBR).Sprintf("%d", n)
}

// FormatMil 柱状图标签：>= 1000 时显示为 "N Mil"，N 为 value/1000 四舍六入五成双
func FormatMil(n int) string {
	if n < 1000 {
		return FormatThousands(n)
	}
	k := decimal.NewFromInt(int64(n)).Div(decimal.NewFromInt(1000)).RoundBank(0)
	return FormatThousands(int(k.IntPart())) + " Mil"
}

// FormatRatioLabel 比值柱标签：>= 10 不保留小数，否则保留 1 位
//
// 按浮点数的精确二进制值舍入：9/20 得到 "0.5"，1/8 的指标卡得到 "0.12"。
func FormatRatioLabel(r float64) string {
	if r >= 10 {
		return strconv.FormatFloat(r, 'f', 0, 64)
	}
	return strconv.FormatFloat(r, 'f', 1, 64)
}

// FormatRatioKPI 指标卡中的比值，保留 2 位小数
func FormatRatioKPI(r float64) string {
	return strconv.FormatFloat(r, 'f', 2, 64)
}
