package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/screentime/internal/api"
	"github.com/sadopc/screentime/internal/format"
	"github.com/sadopc/screentime/internal/label"
)

const (
	categoriesErrText = "加载类别数据失败"
	categoryAppsShown = 5
)

type categoriesModel struct {
	deps
	width  int
	height int

	req   request
	stats api.CategoryStats
}

func newCategoriesModel(d deps) categoriesModel {
	return categoriesModel{deps: d}
}

func (c *categoriesModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type categoriesDataMsg struct {
	seq   uint64
	stats api.CategoryStats
	err   error
}

func (c categoriesModel) load(f filters) (categoriesModel, tea.Cmd) {
	seq := c.req.begin()
	src := c.src
	return c, func() tea.Msg {
		cs, err := src.Categories(context.Background(), api.DeviceParams{Device: f.Device})
		return categoriesDataMsg{seq: seq, stats: cs, err: err}
	}
}

func (c categoriesModel) update(msg tea.Msg) (categoriesModel, tea.Cmd) {
	if msg, ok := msg.(categoriesDataMsg); ok {
		if !settleFetch(c.deps, &c.req, "categories", msg.seq, msg.err) || msg.err != nil {
			return c, nil
		}
		c.stats = msg.stats
		warnInvalid(c.deps, "categories", c.stats.Validate())
		for _, s := range c.stats {
			checkCategory(c.deps, s.Category)
		}
	}
	return c, nil
}

func (c categoriesModel) view(spin string) string {
	w := c.width - 4
	title := titleStyle.Render("类别分析")
	if s, ok := renderState(c.req, categoriesErrText, spin, w-4); ok {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", s))
	}

	bars := make([]barchart.BarData, 0, len(c.stats))
	for _, s := range c.stats {
		cat, _ := label.ParseCategory(s.Category)
		bars = append(bars, singleBar(label.CategoryName(s.Category), s.Percentage, cat.Color()))
	}

	rows := []string{title, "", subtitleStyle.Render("使用占比 (%)"), renderBars(w, c.height, bars), ""}
	if len(c.stats) == 0 {
		rows = append(rows, mutedStyle.Render(noData))
	}
	for _, s := range c.stats {
		cat, _ := label.ParseCategory(s.Category)
		name := lipgloss.NewStyle().Width(10).Render(label.CategoryName(s.Category))
		rows = append(rows, fmt.Sprintf("  %s %s %7s %10s  %d 个应用  %s 次启动",
			dot(cat.Color()), name, format.Percent(s.Percentage),
			format.DurationShort(s.TotalDurationMS), s.AppCount, format.Count(s.LaunchCount)))
		if len(s.Apps) > 0 {
			rows = append(rows, mutedStyle.Render("      "+appSample(s.Apps, categoryAppsShown)))
		}
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// appSample joins the first n names and counts the rest.
func appSample(apps []string, n int) string {
	if len(apps) <= n {
		return strings.Join(apps, ", ")
	}
	return fmt.Sprintf("%s 等 %d 个", strings.Join(apps[:n], ", "), len(apps))
}
