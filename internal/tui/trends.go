package tui

import (
	"context"
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/screentime/internal/api"
	"github.com/sadopc/screentime/internal/format"
)

const (
	trendsErrText   = "加载趋势数据失败"
	trendsDailyLen  = 30
	trendsPeriodLen = 12
	dailyStatsLimit = 30
	dailyStatsShown = 10
)

func granularityName(g api.Granularity) string {
	switch g {
	case api.GranularityWeekly:
		return "按周"
	case api.GranularityMonthly:
		return "按月"
	}
	return "按日"
}

type trendsModel struct {
	deps
	width  int
	height int

	req         request
	f           filters
	granularity api.Granularity
	trend       []api.TrendPoint
	daily       []api.DailyStat
	hourly      []api.HourlyStat
}

func newTrendsModel(d deps) trendsModel {
	return trendsModel{deps: d, granularity: api.GranularityDaily}
}

func (t *trendsModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

type trendsDataMsg struct {
	seq         uint64
	granularity api.Granularity
	trend       []api.TrendPoint
	daily       []api.DailyStat
	hourly      []api.HourlyStat
	err         error
}

func (t trendsModel) load(f filters) (trendsModel, tea.Cmd) {
	t.f = f
	seq := t.req.begin()
	return t, t.fetch(seq)
}

func (t trendsModel) fetch(seq uint64) tea.Cmd {
	src, f, g := t.src, t.f, t.granularity
	return func() tea.Msg {
		ctx := context.Background()
		msg := trendsDataMsg{seq: seq, granularity: g}

		msg.trend, msg.err = src.Trends(ctx, api.TrendParams{
			Granularity: g, Start: f.Start, End: f.End, Device: f.Device,
		})
		if msg.err != nil {
			return msg
		}
		msg.daily, msg.err = src.DailyStats(ctx, api.DailyParams{
			Start: f.Start, End: f.End, Limit: dailyStatsLimit, Device: f.Device,
		})
		if msg.err != nil {
			return msg
		}
		msg.hourly, msg.err = src.HourlyStats(ctx, api.HourlyParams{
			Start: f.Start, End: f.End, Device: f.Device,
		})
		return msg
	}
}

func (t trendsModel) update(msg tea.Msg) (trendsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case trendsDataMsg:
		if !settleFetch(t.deps, &t.req, "trends", msg.seq, msg.err) || msg.err != nil {
			return t, nil
		}
		n := trendsPeriodLen
		if msg.granularity == api.GranularityDaily {
			n = trendsDailyLen
		}
		t.trend = lastN(msg.trend, n)
		t.daily = msg.daily
		t.hourly = msg.hourly

	case tea.KeyMsg:
		if key.Matches(msg, keys.Granularity) {
			t.granularity = t.granularity.Next()
			return t.load(t.f)
		}
	}
	return t, nil
}

func (t trendsModel) view(spin string) string {
	w := t.width - 4

	var tabs []string
	for _, g := range api.GranularityValues {
		if g == t.granularity {
			tabs = append(tabs, activeTabStyle.Render(granularityName(g)))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(granularityName(g)))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		append([]string{titleStyle.Render("使用趋势"), "  "}, tabs...)...,
	)

	if s, ok := renderState(t.req, trendsErrText, spin, w-4); ok {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, header, "", s))
	}

	trendBars := make([]barchart.BarData, 0, len(t.trend))
	for _, p := range t.trend {
		lbl := format.Date(p.Date)
		if t.granularity == api.GranularityDaily {
			lbl = shortDate(p.Date)
		}
		trendBars = append(trendBars, singleBar(lbl, p.Value, string(colorPrimary)))
	}

	hourBars := make([]barchart.BarData, 0, len(t.hourly))
	for _, h := range t.hourly {
		hourBars = append(hourBars, singleBar(fmt.Sprintf("%d", h.Hour), float64(h.LaunchCount), string(colorSecondary)))
	}

	rows := []string{
		header, "",
		subtitleStyle.Render("屏幕时间 (小时)"),
		renderBars(w, t.height, trendBars),
		"",
		subtitleStyle.Render("每小时启动次数"),
		renderBars(w, t.height, hourBars),
		"",
		subtitleStyle.Render("每日统计"),
	}
	rows = append(rows, t.renderDaily()...)
	rows = append(rows, "", mutedStyle.Render("  g: 切换粒度"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (t trendsModel) renderDaily() []string {
	if len(t.daily) == 0 {
		return []string{mutedStyle.Render(noData)}
	}
	rows := []string{mutedStyle.Render(fmt.Sprintf("  %-10s %10s %6s %8s  %s", "日期", "时长", "应用", "启动", "最常用"))}
	for _, d := range lastN(t.daily, dailyStatsShown) {
		rows = append(rows, fmt.Sprintf("  %-10s %10s %6d %8s  %s",
			format.Date(d.Date), format.DurationShort(d.TotalDurationMS),
			d.UniqueApps, format.Count(d.LaunchCount), d.TopApp))
	}
	return rows
}
