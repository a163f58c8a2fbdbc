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
	ecosystemErrText = "加载应用生态数据失败"
	ecosystemShown   = 15
)

type ecosystemModel struct {
	deps
	width  int
	height int

	req request
	eco *api.AppEcosystem
}

func newEcosystemModel(d deps) ecosystemModel {
	return ecosystemModel{deps: d}
}

func (e *ecosystemModel) setSize(w, h int) {
	e.width = w
	e.height = h
}

type ecosystemDataMsg struct {
	seq uint64
	eco *api.AppEcosystem
	err error
}

func (e ecosystemModel) load(filters) (ecosystemModel, tea.Cmd) {
	seq := e.req.begin()
	src := e.src
	return e, func() tea.Msg {
		eco, err := src.AppEcosystem(context.Background())
		return ecosystemDataMsg{seq: seq, eco: eco, err: err}
	}
}

func (e ecosystemModel) update(msg tea.Msg) (ecosystemModel, tea.Cmd) {
	if msg, ok := msg.(ecosystemDataMsg); ok {
		if !settleFetch(e.deps, &e.req, "app_ecosystem", msg.seq, msg.err) || msg.err != nil {
			return e, nil
		}
		e.eco = msg.eco
		if e.eco != nil {
			warnInvalid(e.deps, "app_ecosystem", e.eco.Validate())
		}
	}
	return e, nil
}

func (e ecosystemModel) view(spin string) string {
	w := e.width - 4
	title := titleStyle.Render("应用生态")
	if s, ok := renderState(e.req, ecosystemErrText, spin, w-4); ok {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", s))
	}
	eco := e.eco
	if eco == nil {
		eco = &api.AppEcosystem{}
	}

	rows := []string{
		title, "",
		cardRow(w-4,
			[2]string{"总应用数", format.Count(int64(eco.TotalApps))},
			[2]string{"跨平台", format.Count(int64(eco.CrossPlatformCount))},
			[2]string{"仅手機", format.Count(int64(len(eco.PhoneOnlyApps)))},
			[2]string{"仅電腦", format.Count(int64(len(eco.ComputerOnlyApps)))},
		),
	}
	rows = append(rows, appGroup("🌐 跨平台应用", "#722ED1", eco.CrossPlatformApps)...)
	rows = append(rows, appGroup(label.DevicePhone.Icon()+" 仅手機", label.DevicePhone.Color(), eco.PhoneOnlyApps)...)
	rows = append(rows, appGroup(label.DeviceComputer.Icon()+" 仅電腦", label.DeviceComputer.Color(), eco.ComputerOnlyApps)...)

	if len(eco.Insights) > 0 {
		rows = append(rows, "", subtitleStyle.Render("洞察"))
		rows = append(rows, bulletList(eco.Insights)...)
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func appGroup(title, color string, apps []string) []string {
	head := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).
		Render(fmt.Sprintf("%s (%d)", title, len(apps)))
	rows := []string{"", head}
	if len(apps) == 0 {
		return append(rows, mutedStyle.Render(noData))
	}
	return append(rows, "  "+appSample(apps, ecosystemShown))
}
