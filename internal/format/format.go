// Package format turns backend-native values into display strings.
//
// Durations arrive as milliseconds and dates as YYYYMMDD codes. Negative
// durations are outside the contract; the backend never sends them.
package format

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

const (
	msPerMinute = 60_000
	msPerHour   = 3_600_000
)

func split(ms int64) (hours, minutes int64) {
	return ms / msPerHour, (ms % msPerHour) / msPerMinute
}

// Duration renders ms as "1小时30分钟", or "30分钟" under an hour.
func Duration(ms int64) string {
	h, m := split(ms)
	if h > 0 {
		return fmt.Sprintf("%d小时%d分钟", h, m)
	}
	return fmt.Sprintf("%d分钟", m)
}

// DurationShort renders ms as "2h 5m", or "45m" under an hour.
func DurationShort(ms int64) string {
	h, m := split(ms)
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// Date converts "20240115" to "2024-01-15". Input of any other length is
// returned unchanged.
func Date(code string) string {
	if len(code) != 8 {
		return code
	}
	return code[0:4] + "-" + code[4:6] + "-" + code[6:8]
}

// Hours renders whole hours, e.g. "12小时".
func Hours(ms int64) string {
	return fmt.Sprintf("%d小时", ms/msPerHour)
}

// HoursFloat renders hours with one decimal, e.g. "1.5小时".
func HoursFloat(ms int64) string {
	return fmt.Sprintf("%.1f小时", float64(ms)/msPerHour)
}

// Minutes converts ms to fractional minutes for charts.
func Minutes(ms int64) float64 {
	return float64(ms) / msPerMinute
}

// Percent renders p with one decimal, e.g. "12.3%".
func Percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// Count renders n with thousands separators.
func Count(n int64) string {
	return humanize.Comma(n)
}

// HourLabel renders an hour of day as "08:00".
func HourLabel(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

// PerDay divides total by days. ok is false when days is zero.
func PerDay(total int64, days int) (n int64, ok bool) {
	if days <= 0 {
		return 0, false
	}
	return total / int64(days), true
}
