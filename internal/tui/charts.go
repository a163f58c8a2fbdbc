package tui

import (
	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"
)

const noData = "  暂无数据"

func chartSize(w, h int) (int, int) {
	cw := w - 8
	if cw < 20 {
		cw = 20
	}
	ch := 10
	if h > 36 {
		ch = 14
	}
	return cw, ch
}

// renderBars draws bars into a chart sized for a panel of width w and
// height h.
func renderBars(w, h int, bars []barchart.BarData) string {
	if len(bars) == 0 {
		return mutedStyle.Render(noData)
	}
	cw, ch := chartSize(w, h)
	c := barchart.New(cw, ch)
	c.PushAll(bars)
	c.Draw()
	return c.View()
}

func barValue(name string, v float64, color string) barchart.BarValue {
	return barchart.BarValue{
		Name:  name,
		Value: v,
		Style: lipgloss.NewStyle().Foreground(lipgloss.Color(color)),
	}
}

func singleBar(lbl string, v float64, color string) barchart.BarData {
	return barchart.BarData{Label: lbl, Values: []barchart.BarValue{barValue(lbl, v, color)}}
}

// stackedBar is one bar with the phone share below the computer share.
func stackedBar(lbl string, phone, computer float64) barchart.BarData {
	return barchart.BarData{
		Label: lbl,
		Values: []barchart.BarValue{
			barValue("手機", phone, phoneColor),
			barValue("電腦", computer, computerColor),
		},
	}
}

func renderSparkline(w int, values []float64) string {
	if len(values) == 0 {
		return mutedStyle.Render(noData)
	}
	if w < 10 {
		w = 10
	}
	sl := sparkline.New(w, 3)
	sl.PushAll(values)
	sl.Draw()
	return sl.View()
}

func deviceLegend() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		dot(phoneColor), " 手機  ", dot(computerColor), " 電腦",
	)
}

// shortDate turns "20240115" into "01-15" for chart labels.
func shortDate(code string) string {
	if len(code) != 8 {
		return code
	}
	return code[4:6] + "-" + code[6:8]
}
