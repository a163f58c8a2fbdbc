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

const profileErrText = "加载用户画像失败"

type profileModel struct {
	deps
	width  int
	height int

	req     request
	profile *api.UserProfile
}

func newProfileModel(d deps) profileModel {
	return profileModel{deps: d}
}

func (p *profileModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type profileDataMsg struct {
	seq     uint64
	profile *api.UserProfile
	err     error
}

func (p profileModel) load(filters) (profileModel, tea.Cmd) {
	seq := p.req.begin()
	src := p.src
	return p, func() tea.Msg {
		up, err := src.UserProfile(context.Background())
		return profileDataMsg{seq: seq, profile: up, err: err}
	}
}

func (p profileModel) update(msg tea.Msg) (profileModel, tea.Cmd) {
	if msg, ok := msg.(profileDataMsg); ok {
		if !settleFetch(p.deps, &p.req, "user_profile", msg.seq, msg.err) || msg.err != nil {
			return p, nil
		}
		p.profile = msg.profile
		if up := p.profile; up != nil {
			for _, s := range []string{up.DeviceDependency, up.WorkMode, up.EntertainmentPref, up.ProductivityType, up.HealthStatus} {
				checkProfile(p.deps, s)
			}
		}
	}
	return p, nil
}

func (p profileModel) view(spin string) string {
	w := p.width - 4
	title := titleStyle.Render("用户画像")
	if s, ok := renderState(p.req, profileErrText, spin, w-4); ok {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", s))
	}
	up := p.profile
	if up == nil {
		up = &api.UserProfile{}
	}

	traits := [][2]string{
		{"设备依赖", up.DeviceDependency},
		{"工作模式", up.WorkMode},
		{"娱乐偏好", up.EntertainmentPref},
		{"生产力类型", up.ProductivityType},
		{"健康状态", up.HealthStatus},
	}
	var tags []string
	for _, t := range traits {
		c, _ := label.ParseProfile(t[1])
		tags = append(tags, lipgloss.JoinVertical(lipgloss.Center,
			mutedStyle.Render(t[0]), tag(t[1], c.Color()),
		), "  ")
	}

	rows := []string{
		title, "",
		lipgloss.JoinHorizontal(lipgloss.Top, tags...),
		"",
		mutedStyle.Render("总屏幕时间 ") + cardValueStyle.Render(format.Hours(up.TotalScreentime)),
	}
	if len(up.Recommendations) > 0 {
		rows = append(rows, "", subtitleStyle.Render("建议"))
		for i, r := range up.Recommendations {
			rows = append(rows, fmt.Sprintf("  %d. %s", i+1, r))
		}
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
