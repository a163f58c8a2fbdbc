package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/screentime/internal/api"
	"github.com/sadopc/screentime/internal/label"
)

var errDateFormat = errors.New("日期格式应为 YYYYMMDD")

type filtersModel struct {
	width      int
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	device   *string
	start    *string
	end      *string
	category *string
}

func newFiltersModel() filtersModel {
	d, s, e, c := "", "", "", ""
	return filtersModel{device: &d, start: &s, end: &e, category: &c}
}

func (m *filtersModel) setSize(w int) {
	m.width = w
}

type filtersAppliedMsg struct {
	f filters
}

// validateDate accepts an empty string or a real calendar date as YYYYMMDD.
func validateDate(s string) error {
	if !api.ValidDate(s) {
		return errDateFormat
	}
	return nil
}

// deviceOptions lists "all" plus every device. A current device missing from
// the list (not loaded yet, or unknown to the backend) keeps an option under
// its raw ID, otherwise the select would reset it to "all".
func deviceOptions(devices []api.Device, cur string) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("全部设备", "")}
	found := cur == ""
	for _, d := range devices {
		t, _ := label.ParseDeviceType(d.Type)
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s %s", t.Icon(), d.Name), d.ID))
		if d.ID == cur {
			found = true
		}
	}
	if !found {
		opts = append(opts, huh.NewOption(cur, cur))
	}
	return opts
}

func categoryOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("全部类别", "")}
	for _, k := range label.CategoryKeys() {
		opts = append(opts, huh.NewOption(label.CategoryName(k), k))
	}
	return opts
}

func (m filtersModel) show(cur filters, devices []api.Device) (filtersModel, tea.Cmd) {
	*m.device = cur.Device
	*m.start = cur.Start
	*m.end = cur.End
	*m.category = cur.Category

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("设备").
				Options(deviceOptions(devices, cur.Device)...).
				Value(m.device),
			huh.NewInput().Title("开始日期 (YYYYMMDD)").
				Value(m.start).
				Validate(validateDate),
			huh.NewInput().Title("结束日期 (YYYYMMDD)").
				Value(m.end).
				Validate(validateDate),
			huh.NewSelect[string]().Title("类别").
				Options(categoryOptions()...).
				Value(m.category),
		).Title("筛选"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m filtersModel) update(msg tea.Msg) (filtersModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		applied := m.value()
		return m, func() tea.Msg { return filtersAppliedMsg{f: applied} }
	}

	return m, cmd
}

// value reads the form. A reversed date range is swapped.
func (m filtersModel) value() filters {
	f := filters{
		Device:   *m.device,
		Start:    *m.start,
		End:      *m.end,
		Category: *m.category,
	}
	f.Start, f.End = api.OrderedRange(f.Start, f.End)
	return f
}

func (m filtersModel) view() string {
	w := m.width - 4
	if m.form == nil {
		return ""
	}
	return activePanelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("筛选条件"), "", m.form.View()),
	)
}

// describe summarizes f for the footer.
func (f filters) describe(deviceName string) string {
	s := deviceName
	if f.Start != "" || f.End != "" {
		s += fmt.Sprintf(" · %s-%s", f.Start, f.End)
	}
	if f.Category != "" {
		s += " · " + label.CategoryName(f.Category)
	}
	return s
}
