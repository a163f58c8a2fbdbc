package tui

import (
	"context"
	"fmt"
	"net/url"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/screentime/internal/api"
	"github.com/sadopc/screentime/internal/format"
	"github.com/sadopc/screentime/internal/label"
)

const (
	detailErrText  = "加载应用详情失败"
	detailTrendLen = 30
)

// detailModel shows one app. It is opened from the rankings table.
type detailModel struct {
	deps
	width  int
	height int

	req       request
	packageID string
	appName   string
	detail    *api.AppDetail
}

func newDetailModel(d deps) detailModel {
	return detailModel{deps: d}
}

func (d *detailModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type appDetailDataMsg struct {
	seq    uint64
	detail *api.AppDetail
	err    error
}

func (d detailModel) open(packageID, appName string, f filters) (detailModel, tea.Cmd) {
	d.packageID = packageID
	d.appName = appName
	d.detail = nil
	return d.load(f)
}

func (d detailModel) load(f filters) (detailModel, tea.Cmd) {
	seq := d.req.begin()
	// Computer-side IDs can carry '/', '#' or '%'.
	src, id := d.src, url.PathEscape(d.packageID)
	return d, func() tea.Msg {
		det, err := src.AppDetail(context.Background(), id, api.DeviceParams{Device: f.Device})
		return appDetailDataMsg{seq: seq, detail: det, err: err}
	}
}

func (d detailModel) update(msg tea.Msg) (detailModel, tea.Cmd) {
	if msg, ok := msg.(appDetailDataMsg); ok {
		if !settleFetch(d.deps, &d.req, "app_detail", msg.seq, msg.err) || msg.err != nil {
			return d, nil
		}
		d.detail = msg.detail
		if d.detail != nil {
			checkCategory(d.deps, d.detail.App.Category)
		}
	}
	return d, nil
}

func (d detailModel) view(spin string) string {
	w := d.width - 4
	title := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render(d.appName), "  ", mutedStyle.Render(d.packageID),
	)
	nav := mutedStyle.Render("  esc: 返回排名")

	if s, ok := renderState(d.req, detailErrText, spin, w-4); ok {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", s, "", nav))
	}
	det := d.detail
	if det == nil {
		det = &api.AppDetail{}
	}
	app := det.App
	c, _ := label.ParseCategory(app.Category)

	rows := []string{
		title,
		"",
		cardRow(w-4,
			[2]string{"类别", label.CategoryName(app.Category)},
			[2]string{"总使用时长", format.Duration(app.TotalDurationMS)},
			[2]string{"总启动次数", format.Count(app.TotalLaunches)},
			[2]string{"总通知数", format.Count(app.TotalNotifications)},
		),
		mutedStyle.Render(fmt.Sprintf("  首次使用 %s  最后使用 %s", format.Date(app.FirstSeen), format.Date(app.LastSeen))),
		"",
		subtitleStyle.Render("每日使用 (分钟)"),
	}

	points := lastN(det.DailyTrend, detailTrendLen)
	bars := make([]barchart.BarData, 0, len(points))
	for _, p := range points {
		bars = append(bars, singleBar(shortDate(p.Date), format.Minutes(p.Duration), c.Color()))
	}
	rows = append(rows, renderBars(w, d.height, bars), "", nav)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
