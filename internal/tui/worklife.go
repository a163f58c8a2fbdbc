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
	balanceErrText = "加载工作生活平衡数据失败"
	workColor      = "#1890FF"
	lifeColor      = "#52C41A"
)

type balanceModel struct {
	deps
	width  int
	height int

	req     request
	balance *api.WorkLifeBalance
}

func newBalanceModel(d deps) balanceModel {
	return balanceModel{deps: d}
}

func (b *balanceModel) setSize(w, h int) {
	b.width = w
	b.height = h
}

type balanceDataMsg struct {
	seq     uint64
	balance *api.WorkLifeBalance
	err     error
}

func (b balanceModel) load(filters) (balanceModel, tea.Cmd) {
	seq := b.req.begin()
	src := b.src
	return b, func() tea.Msg {
		wl, err := src.WorkLifeBalance(context.Background())
		return balanceDataMsg{seq: seq, balance: wl, err: err}
	}
}

func (b balanceModel) update(msg tea.Msg) (balanceModel, tea.Cmd) {
	if msg, ok := msg.(balanceDataMsg); ok {
		if !settleFetch(b.deps, &b.req, "work_life", msg.seq, msg.err) || msg.err != nil {
			return b, nil
		}
		b.balance = msg.balance
	}
	return b, nil
}

func (b balanceModel) view(spin string) string {
	w := b.width - 4
	title := titleStyle.Render("工作生活平衡")
	if s, ok := renderState(b.req, balanceErrText, spin, w-4); ok {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", s))
	}
	wl := b.balance
	if wl == nil {
		wl = &api.WorkLifeBalance{}
	}

	grade := label.GradeFor(wl.BalanceScore)
	score := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(grade.Color())).
		Render(fmt.Sprintf("%.1f", wl.BalanceScore))

	barW := min(w-36, 50)
	rows := []string{
		title, "",
		lipgloss.JoinHorizontal(lipgloss.Center, mutedStyle.Render("平衡分数 "), score, "  ", tag(grade.String(), grade.Color())),
		"",
		fmt.Sprintf("  工作 %s %s  %s", bar(wl.WorkPercentage/100, barW, workColor),
			format.Percent(wl.WorkPercentage), format.Duration(wl.WorkDuration)),
		fmt.Sprintf("  生活 %s %s  %s", bar(wl.LifePercentage/100, barW, lifeColor),
			format.Percent(wl.LifePercentage), format.Duration(wl.LifeDuration)),
	}
	if wl.Recommendation != "" {
		rows = append(rows, "", subtitleStyle.Render("建议"), "  "+wl.Recommendation)
	}

	rows = append(rows, "",
		subtitleStyle.Render("使用模式"),
		patternLine("工作日", wl.WeekdayPattern),
		patternLine("周末", wl.WeekendPattern),
	)
	if len(wl.Insights) > 0 {
		rows = append(rows, "", subtitleStyle.Render("洞察"))
		rows = append(rows, bulletList(wl.Insights)...)
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func patternLine(name string, p api.UsagePattern) string {
	return fmt.Sprintf("  %-4s 工作 %s  生活 %s", name, format.Duration(p.WorkDuration), format.Duration(p.LifeDuration))
}
