package tui

import (
	"context"
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/screentime/internal/api"
	"github.com/sadopc/screentime/internal/format"
)

const allocationErrText = "加载时间分配数据失败"

type allocationModel struct {
	deps
	width  int
	height int

	req   request
	hours api.TimeAllocation
}

func newAllocationModel(d deps) allocationModel {
	return allocationModel{deps: d}
}

func (a *allocationModel) setSize(w, h int) {
	a.width = w
	a.height = h
}

type allocationDataMsg struct {
	seq   uint64
	hours api.TimeAllocation
	err   error
}

func (a allocationModel) load(filters) (allocationModel, tea.Cmd) {
	seq := a.req.begin()
	src := a.src
	return a, func() tea.Msg {
		ta, err := src.TimeAllocation(context.Background())
		return allocationDataMsg{seq: seq, hours: ta, err: err}
	}
}

func (a allocationModel) update(msg tea.Msg) (allocationModel, tea.Cmd) {
	if msg, ok := msg.(allocationDataMsg); ok {
		if !settleFetch(a.deps, &a.req, "time_allocation", msg.seq, msg.err) || msg.err != nil {
			return a, nil
		}
		a.hours = msg.hours
		warnInvalid(a.deps, "time_allocation", a.hours.Validate())
	}
	return a, nil
}

// peak returns the busiest hour. ok is false when nothing was used.
func (a allocationModel) peak() (api.HourlyAllocation, bool) {
	var best api.HourlyAllocation
	for _, h := range a.hours {
		if h.TotalDuration > best.TotalDuration {
			best = h
		}
	}
	return best, best.TotalDuration > 0
}

func (a allocationModel) view(spin string) string {
	w := a.width - 4
	title := titleStyle.Render("时间分配")
	if s, ok := renderState(a.req, allocationErrText, spin, w-4); ok {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", s))
	}

	bars := make([]barchart.BarData, 0, len(a.hours))
	for _, h := range a.hours {
		bars = append(bars, stackedBar(fmt.Sprintf("%d", h.Hour),
			format.Minutes(h.PhoneDuration), format.Minutes(h.ComputerDuration)))
	}

	rows := []string{
		title, "",
		subtitleStyle.Render("24 小时分布 (分钟)") + "  " + deviceLegend(),
		renderBars(w, a.height, bars),
	}
	if p, ok := a.peak(); ok {
		rows = append(rows, "", fmt.Sprintf("  高峰时段 %s  %s  (手機 %s / 電腦 %s)",
			highlightStyle.Render(format.HourLabel(p.Hour)), format.Duration(p.TotalDuration),
			format.Percent(p.PhonePercentage), format.Percent(p.ComputerPercentage)))
	}

	rows = append(rows, "", mutedStyle.Render(fmt.Sprintf("  %-6s %10s %10s %10s", "时段", "手機", "電腦", "合计")))
	for _, h := range a.hours {
		if h.TotalDuration == 0 {
			continue
		}
		rows = append(rows, fmt.Sprintf("  %-6s %10s %10s %10s", format.HourLabel(h.Hour),
			format.DurationShort(h.PhoneDuration), format.DurationShort(h.ComputerDuration),
			format.DurationShort(h.TotalDuration)))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
