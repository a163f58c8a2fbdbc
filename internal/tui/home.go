package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/screentime/internal/api"
	"github.com/sadopc/screentime/internal/format"
	"github.com/sadopc/screentime/internal/label"
)

const (
	homeErrText  = "加载数据失败，请确保后端服务正在运行"
	homeTopN     = 5
	homeTrendLen = 7
)

type homeModel struct {
	deps
	width  int
	height int

	req     request
	summary *api.Summary
	top     []api.AppRanking
	trend   []api.TrendPoint
}

func newHomeModel(d deps) homeModel {
	return homeModel{deps: d}
}

func (h *homeModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

type homeDataMsg struct {
	seq     uint64
	summary *api.Summary
	top     []api.AppRanking
	trend   []api.TrendPoint
	err     error
}

func (h homeModel) load(f filters) (homeModel, tea.Cmd) {
	seq := h.req.begin()
	return h, h.fetch(seq, f)
}

// fetch issues the three home requests in order and stops at the first
// failure.
func (h homeModel) fetch(seq uint64, f filters) tea.Cmd {
	src := h.src
	return func() tea.Msg {
		ctx := context.Background()
		msg := homeDataMsg{seq: seq}

		msg.summary, msg.err = src.Summary(ctx, api.DeviceParams{Device: f.Device})
		if msg.err != nil {
			return msg
		}
		msg.top, msg.err = src.Rankings(ctx, api.RankingParams{
			Limit:   homeTopN,
			OrderBy: api.OrderByDuration,
			Device:  f.Device,
		})
		if msg.err != nil {
			return msg
		}
		msg.trend, msg.err = src.Trends(ctx, api.TrendParams{
			Granularity: api.GranularityDaily,
			Start:       f.Start,
			End:         f.End,
			Device:      f.Device,
		})
		return msg
	}
}

func (h homeModel) update(msg tea.Msg) (homeModel, tea.Cmd) {
	if msg, ok := msg.(homeDataMsg); ok {
		if !settleFetch(h.deps, &h.req, "home", msg.seq, msg.err) || msg.err != nil {
			return h, nil
		}
		h.summary = msg.summary
		h.top = msg.top
		h.trend = lastN(msg.trend, homeTrendLen)
		for _, r := range h.top {
			checkCategory(h.deps, r.Category)
		}
	}
	return h, nil
}

func (h homeModel) view(spin string) string {
	w := h.width - 4
	if s, ok := renderState(h.req, homeErrText, spin, w); ok {
		return s
	}
	s := h.summary
	if s == nil {
		s = &api.Summary{}
	}

	rows := []string{
		titleStyle.Render("概览"),
		mutedStyle.Render(fmt.Sprintf("数据范围: %s 至 %s",
			format.Date(s.DateRange.Start), format.Date(s.DateRange.End))),
		"",
		cardRow(w-4,
			[2]string{"总应用数", format.Count(int64(s.TotalApps))},
			[2]string{"总使用时长", format.Hours(s.TotalDurationMS)},
			[2]string{"活跃天数", format.Count(int64(s.ActiveDays))},
			[2]string{"日均使用", format.HoursFloat(int64(s.AvgDailyDuration))},
		),
	}

	if s.TopApp != "" {
		rows = append(rows, "",
			subtitleStyle.Render("最常用应用: ")+
				highlightStyle.Render(s.TopApp)+
				mutedStyle.Render(fmt.Sprintf("  %s  %s", s.TopAppPackage, format.Duration(s.TopAppDurationMS))),
		)
	}

	rows = append(rows, "", subtitleStyle.Render("使用时长 Top 5"))
	rows = append(rows, h.renderTop()...)

	rows = append(rows, "", subtitleStyle.Render("最近 7 天趋势"))
	rows = append(rows, h.renderTrend(w)...)

	rows = append(rows, "",
		cardRow(w-4,
			[2]string{"总启动次数", format.Count(s.TotalLaunches)},
			[2]string{"总通知数", format.Count(s.TotalNotifications)},
			[2]string{"平均每日启动", avgLaunches(s)},
		),
	)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// avgLaunches is "-" when there are no active days to divide by.
func avgLaunches(s *api.Summary) string {
	if n, ok := format.PerDay(s.TotalLaunches, s.ActiveDays); ok {
		return format.Count(n)
	}
	return "-"
}

func (h homeModel) renderTop() []string {
	if len(h.top) == 0 {
		return []string{mutedStyle.Render(noData)}
	}
	var rows []string
	for _, r := range h.top {
		c, _ := label.ParseCategory(r.Category)
		name := lipgloss.NewStyle().Width(20).Render(r.AppName)
		rows = append(rows, fmt.Sprintf("  %2d. %s %s %-8s %10s %7s",
			r.Rank, name, dot(c.Color()), label.CategoryName(r.Category),
			format.DurationShort(r.TotalDurationMS), format.Percent(r.Percentage)))
	}
	return rows
}

// renderTrend shows a sparkline followed by one bar per day. A bar is
// full at ten hours.
func (h homeModel) renderTrend(w int) []string {
	if len(h.trend) == 0 {
		return []string{mutedStyle.Render(noData)}
	}
	values := make([]float64, 0, len(h.trend))
	for _, p := range h.trend {
		values = append(values, p.Value)
	}
	rows := []string{renderSparkline(min(w-8, 60), values)}

	barW := min(w-30, 40)
	for _, p := range h.trend {
		rows = append(rows, fmt.Sprintf("  %s %s %.1f小时",
			shortDate(p.Date), bar(p.Value/10, barW, string(colorPrimary)), p.Value))
	}
	return rows
}
