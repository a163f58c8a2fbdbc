package tui

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/screentime/internal/api"
	"github.com/sadopc/screentime/internal/format"
	"github.com/sadopc/screentime/internal/label"
)

const rankingsErrText = "加载排名数据失败"

// rankingLimits are the row counts +/- step through.
var rankingLimits = []int{10, 20, 50, 100}

func orderByName(o api.OrderBy) string {
	switch o {
	case api.OrderByLaunches:
		return "启动次数"
	case api.OrderByNotifications:
		return "通知数"
	}
	return "使用时长"
}

type rankingsModel struct {
	deps
	width  int
	height int

	req      request
	f        filters
	limit    int
	orderBy  api.OrderBy
	rankings []api.AppRanking
	table    table.Model

	showDetail bool
	detail     detailModel
}

func newRankingsModel(d deps, limit int, orderBy api.OrderBy) rankingsModel {
	if limit <= 0 {
		limit = 20
	}
	if !orderBy.Valid() {
		orderBy = api.OrderByDuration
	}

	t := table.New(
		table.WithColumns(rankingColumns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorSubtle).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.Foreground(colorPrimary).Bold(true)
	t.SetStyles(st)

	return rankingsModel{
		deps:    d,
		limit:   limit,
		orderBy: orderBy,
		table:   t,
		detail:  newDetailModel(d),
	}
}

func rankingColumns() []table.Column {
	return []table.Column{
		{Title: "排名", Width: 4},
		{Title: "应用", Width: 22},
		{Title: "类别", Width: 8},
		{Title: "使用时长", Width: 10},
		{Title: "启动次数", Width: 8},
		{Title: "通知数", Width: 8},
		{Title: "占比", Width: 7},
	}
}

func rankingRows(rs []api.AppRanking) []table.Row {
	rows := make([]table.Row, 0, len(rs))
	for _, r := range rs {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", r.Rank),
			r.AppName,
			label.CategoryName(r.Category),
			format.DurationShort(r.TotalDurationMS),
			format.Count(r.LaunchCount),
			format.Count(r.NotificationCount),
			format.Percent(r.Percentage),
		})
	}
	return rows
}

func (r *rankingsModel) setSize(w, h int) {
	r.width = w
	r.height = h
	th := h - 10
	if th < 5 {
		th = 5
	}
	r.table.SetHeight(th)
	r.detail.setSize(w, h)
}

type rankingsDataMsg struct {
	seq      uint64
	rankings []api.AppRanking
	err      error
}

func (r rankingsModel) paramsFor(f filters) api.RankingParams {
	return api.RankingParams{
		Limit:    r.limit,
		OrderBy:  r.orderBy,
		Category: f.Category,
		Device:   f.Device,
	}
}

// load refetches whatever is on screen: the open app detail, or the list.
func (r rankingsModel) load(f filters) (rankingsModel, tea.Cmd) {
	r.f = f
	if r.showDetail {
		var cmd tea.Cmd
		r.detail, cmd = r.detail.load(f)
		return r, cmd
	}
	seq := r.req.begin()
	return r, r.fetch(seq)
}

func (r rankingsModel) fetch(seq uint64) tea.Cmd {
	src, p := r.src, r.paramsFor(r.f)
	return func() tea.Msg {
		rs, err := src.Rankings(context.Background(), p)
		return rankingsDataMsg{seq: seq, rankings: rs, err: err}
	}
}

func (r rankingsModel) update(msg tea.Msg) (rankingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case rankingsDataMsg:
		if !settleFetch(r.deps, &r.req, "rankings", msg.seq, msg.err) || msg.err != nil {
			return r, nil
		}
		warnInvalid(r.deps, "rankings", api.ValidateRanks(msg.rankings))
		r.rankings = slices.Clone(msg.rankings)
		slices.SortStableFunc(r.rankings, func(a, b api.AppRanking) int {
			return cmp.Compare(a.Rank, b.Rank)
		})
		for _, x := range r.rankings {
			checkCategory(r.deps, x.Category)
		}
		r.table.SetRows(rankingRows(r.rankings))
		r.table.SetCursor(0)
		return r, nil

	case appDetailDataMsg:
		var cmd tea.Cmd
		r.detail, cmd = r.detail.update(msg)
		return r, cmd

	case tea.KeyMsg:
		if r.showDetail {
			if key.Matches(msg, keys.Back) {
				r.showDetail = false
			}
			return r, nil
		}
		switch {
		case key.Matches(msg, keys.OrderBy):
			r.orderBy = r.orderBy.Next()
			return r.load(r.f)
		case key.Matches(msg, keys.More):
			if n, ok := nextLimit(r.limit, +1); ok {
				r.limit = n
				return r.load(r.f)
			}
			return r, nil
		case key.Matches(msg, keys.Less):
			if n, ok := nextLimit(r.limit, -1); ok {
				r.limit = n
				return r.load(r.f)
			}
			return r, nil
		case key.Matches(msg, keys.Enter):
			return r.openSelected()
		}
		var cmd tea.Cmd
		r.table, cmd = r.table.Update(msg)
		return r, cmd
	}
	return r, nil
}

func (r rankingsModel) openSelected() (rankingsModel, tea.Cmd) {
	i := r.table.Cursor()
	if r.req.state != stateLoaded || i < 0 || i >= len(r.rankings) {
		return r, nil
	}
	sel := r.rankings[i]
	r.showDetail = true
	var cmd tea.Cmd
	r.detail, cmd = r.detail.open(sel.PackageID, sel.AppName, r.f)
	return r, cmd
}

// nextLimit steps through rankingLimits from the current limit, which may
// be a configured value not in the list.
func nextLimit(cur, dir int) (int, bool) {
	if dir > 0 {
		for _, n := range rankingLimits {
			if n > cur {
				return n, true
			}
		}
		return cur, false
	}
	for i := len(rankingLimits) - 1; i >= 0; i-- {
		if rankingLimits[i] < cur {
			return rankingLimits[i], true
		}
	}
	return cur, false
}

func (r rankingsModel) view(spin string) string {
	if r.showDetail {
		return r.detail.view(spin)
	}
	w := r.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("应用排名"), "  ",
		mutedStyle.Render("排序: "), highlightStyle.Render(orderByName(r.orderBy)), "  ",
		mutedStyle.Render("数量: "), highlightStyle.Render(fmt.Sprintf("%d", r.limit)),
	)

	if s, ok := renderState(r.req, rankingsErrText, spin, w-4); ok {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, header, "", s))
	}

	body := r.table.View()
	if len(r.rankings) == 0 {
		body = mutedStyle.Render(noData)
	}
	nav := mutedStyle.Render("  o: 排序方式  +/-: 数量  enter: 应用详情")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", nav),
	)
}
