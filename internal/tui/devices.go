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

const devicesErrText = "加载设备列表失败"

// devicesModel lists the registered devices. Its data also feeds the
// device choices of the filters form.
type devicesModel struct {
	deps
	width  int
	height int

	req     request
	devices []api.Device
}

func newDevicesModel(d deps) devicesModel {
	return devicesModel{deps: d}
}

func (m *devicesModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type devicesDataMsg struct {
	seq     uint64
	devices []api.Device
	err     error
}

func (m devicesModel) load(filters) (devicesModel, tea.Cmd) {
	seq := m.req.begin()
	return m, m.fetch(seq)
}

func (m devicesModel) fetch(seq uint64) tea.Cmd {
	src := m.src
	return func() tea.Msg {
		ds, err := src.Devices(context.Background())
		return devicesDataMsg{seq: seq, devices: ds, err: err}
	}
}

func (m devicesModel) update(msg tea.Msg) (devicesModel, tea.Cmd) {
	if msg, ok := msg.(devicesDataMsg); ok {
		if !settleFetch(m.deps, &m.req, "devices", msg.seq, msg.err) || msg.err != nil {
			return m, nil
		}
		m.devices = msg.devices
		for _, d := range m.devices {
			if _, ok := label.ParseDeviceType(d.Type); !ok {
				warnDrift(m.deps, "device_type", d.Type)
			}
		}
	}
	return m, nil
}

func (m devicesModel) view(spin string) string {
	w := m.width - 4
	title := titleStyle.Render("设备管理")
	if s, ok := renderState(m.req, devicesErrText, spin, w-4); ok {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", s))
	}

	rows := []string{title, ""}
	if len(m.devices) == 0 {
		rows = append(rows, mutedStyle.Render(noData))
	}
	for _, d := range m.devices {
		t, _ := label.ParseDeviceType(d.Type)
		status := successStyle.Render("● 活跃")
		if !d.IsActive {
			status = mutedStyle.Render("○ 停用")
		}
		name := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Color())).Render(t.Icon() + " " + d.Name)

		rows = append(rows,
			lipgloss.JoinHorizontal(lipgloss.Bottom, name, "  ", mutedStyle.Render(t.Name()), "  ", status),
			mutedStyle.Render(fmt.Sprintf("    ID %s · %s 条记录 · 格式 %s", d.ID, format.Count(d.TotalRecords), d.DataFormat)),
		)
		if d.DateRangeStart != "" || d.DateRangeEnd != "" {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("    数据范围 %s 至 %s",
				format.Date(d.DateRangeStart), format.Date(d.DateRangeEnd))))
		}
		lastSync := "从未同步"
		if d.LastSync != "" {
			lastSync = d.LastSync
		}
		rows = append(rows, mutedStyle.Render("    最后同步 "+lastSync), "")
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// deviceLabel names a device id for the footer, falling back to the id.
func (m devicesModel) deviceLabel(id string) string {
	if id == "" {
		return "全部设备"
	}
	for _, d := range m.devices {
		if d.ID == id {
			return d.Name
		}
	}
	return id
}
