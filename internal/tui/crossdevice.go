package tui

import (
	"context"
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/screentime/internal/api"
	"github.com/sadopc/screentime/internal/format"
	"github.com/sadopc/screentime/internal/label"
)

const (
	crossDeviceErrText = "加载跨设备数据失败"
	totalsShown        = 14
	switchingShown     = 7
)

type crossDeviceModel struct {
	deps
	width  int
	height int

	req        request
	comparison *api.CrossDeviceComparison
	totals     []api.DailyTotal
	switching  []api.SwitchingPattern
}

func newCrossDeviceModel(d deps) crossDeviceModel {
	return crossDeviceModel{deps: d}
}

func (c *crossDeviceModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type crossDeviceDataMsg struct {
	seq        uint64
	comparison *api.CrossDeviceComparison
	totals     []api.DailyTotal
	switching  []api.SwitchingPattern
	err        error
}

func (c crossDeviceModel) load(f filters) (crossDeviceModel, tea.Cmd) {
	seq := c.req.begin()
	src := c.src
	return c, func() tea.Msg {
		ctx := context.Background()
		msg := crossDeviceDataMsg{seq: seq}

		msg.comparison, msg.err = src.CrossDeviceComparison(ctx)
		if msg.err != nil {
			return msg
		}
		msg.totals, msg.err = src.TotalScreentime(ctx, api.RangeParams{Start: f.Start, End: f.End})
		if msg.err != nil {
			return msg
		}
		msg.switching, msg.err = src.SwitchingPatterns(ctx)
		return msg
	}
}

func (c crossDeviceModel) update(msg tea.Msg) (crossDeviceModel, tea.Cmd) {
	if msg, ok := msg.(crossDeviceDataMsg); ok {
		if !settleFetch(c.deps, &c.req, "cross_device", msg.seq, msg.err) || msg.err != nil {
			return c, nil
		}
		c.comparison = msg.comparison
		c.totals = msg.totals
		c.switching = msg.switching
		for _, s := range c.switching {
			if _, ok := label.ParseDeviceType(s.DominantDevice); !ok {
				warnDrift(c.deps, "device_type", s.DominantDevice)
			}
		}
	}
	return c, nil
}

func deviceCard(t label.DeviceType, u api.DeviceUsage, w int) string {
	head := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Color())).Render(t.Icon() + " " + t.Name())
	return cardStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		head,
		cardValueStyle.Render(format.Duration(u.TotalDuration)),
		mutedStyle.Render("日均 "+format.HoursFloat(int64(u.AvgDailyDuration))),
		mutedStyle.Render(fmt.Sprintf("%d 个应用 · %d 天", u.TotalApps, u.ActiveDays)),
		mutedStyle.Render("最常用 "+u.TopApp),
	))
}

func (c crossDeviceModel) view(spin string) string {
	w := c.width - 4
	title := titleStyle.Render("跨设备分析")
	if s, ok := renderState(c.req, crossDeviceErrText, spin, w-4); ok {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", s))
	}
	cmp := c.comparison
	if cmp == nil {
		cmp = &api.CrossDeviceComparison{}
	}

	cw := (w-4)/3 - 2
	if cw < 16 {
		cw = 16
	}
	totalCard := cardStyle.Width(cw).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("🌐 合计"),
		cardValueStyle.Render(format.Duration(cmp.Total.TotalDuration)),
		mutedStyle.Render("日均 "+format.HoursFloat(int64(cmp.Total.AvgDailyDuration))),
	))
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		deviceCard(label.DevicePhone, cmp.Phone, cw),
		deviceCard(label.DeviceComputer, cmp.Computer, cw),
		totalCard,
	)

	barW := min(w-30, 50)
	rows := []string{
		title, "", cards, "",
		fmt.Sprintf("  手機 %s %s", bar(cmp.Total.PhonePercentage/100, barW, phoneColor), format.Percent(cmp.Total.PhonePercentage)),
		fmt.Sprintf("  電腦 %s %s", bar(cmp.Total.ComputerPercentage/100, barW, computerColor), format.Percent(cmp.Total.ComputerPercentage)),
	}
	if len(cmp.Insights) > 0 {
		rows = append(rows, "", subtitleStyle.Render("洞察"))
		rows = append(rows, bulletList(cmp.Insights)...)
	}

	totals := lastN(c.totals, totalsShown)
	bars := make([]barchart.BarData, 0, len(totals))
	for _, t := range totals {
		bars = append(bars, stackedBar(shortDate(t.Date),
			float64(t.PhoneDuration)/3_600_000, float64(t.ComputerDuration)/3_600_000))
	}
	rows = append(rows, "", subtitleStyle.Render("每日屏幕时间 (小时)")+"  "+deviceLegend(), renderBars(w, c.height, bars))

	rows = append(rows, "", subtitleStyle.Render("设备切换"))
	rows = append(rows, c.renderSwitching()...)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (c crossDeviceModel) renderSwitching() []string {
	if len(c.switching) == 0 {
		return []string{mutedStyle.Render(noData)}
	}
	rows := []string{mutedStyle.Render(fmt.Sprintf("  %-10s %6s %6s %6s  %s", "日期", "手機", "電腦", "切换", "主要设备"))}
	for _, s := range lastN(c.switching, switchingShown) {
		t, _ := label.ParseDeviceType(s.DominantDevice)
		rows = append(rows, fmt.Sprintf("  %-10s %6d %6d %6d  %s %s",
			format.Date(s.Date), s.PhoneSessions, s.ComputerSessions, s.EstimatedSwitches, t.Icon(), t.Name()))
	}
	return rows
}
