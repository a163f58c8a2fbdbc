package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sadopc/screentime/internal/api"
	"github.com/sadopc/screentime/internal/export"
	"github.com/sadopc/screentime/internal/logging"
)

const exportTimeout = 30 * time.Second

// Options carries the initial page state taken from configuration.
type Options struct {
	Device          string
	RankingsLimit   int
	RankingsOrderBy api.OrderBy
}

// App is the root Bubble Tea model.
type App struct {
	deps
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	filters    filters
	filterForm filtersModel

	home        homeModel
	rankings    rankingsModel
	trends      trendsModel
	categories  categoriesModel
	crossDevice crossDeviceModel
	balance     balanceModel
	allocation  allocationModel
	profile     profileModel
	ecosystem   ecosystemModel
	devices     devicesModel

	spinner     spinner.Model
	help        help.Model
	status      string
	statusIsErr bool
}

func NewApp(src Source, log *logging.Logger, opts Options) App {
	if log == nil {
		log = logging.Nop()
	}
	d := deps{src: src, log: log}

	h := help.New()
	h.ShowAll = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	a := App{
		deps:        d,
		activeView:  viewHome,
		filters:     filters{Device: opts.Device},
		filterForm:  newFiltersModel(),
		home:        newHomeModel(d),
		rankings:    newRankingsModel(d, opts.RankingsLimit, opts.RankingsOrderBy),
		trends:      newTrendsModel(d),
		categories:  newCategoriesModel(d),
		crossDevice: newCrossDeviceModel(d),
		balance:     newBalanceModel(d),
		allocation:  newAllocationModel(d),
		profile:     newProfileModel(d),
		ecosystem:   newEcosystemModel(d),
		devices:     newDevicesModel(d),
		spinner:     sp,
		help:        h,
	}
	// Init cannot mutate the model, so the first fetches take their
	// sequence numbers here.
	a.home.req.begin()
	a.devices.req.begin()
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		a.home.fetch(a.home.req.seq, a.filters),
		a.devices.fetch(a.devices.req.seq),
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.home.setSize(a.width, contentHeight)
		a.rankings.setSize(a.width, contentHeight)
		a.trends.setSize(a.width, contentHeight)
		a.categories.setSize(a.width, contentHeight)
		a.crossDevice.setSize(a.width, contentHeight)
		a.balance.setSize(a.width, contentHeight)
		a.allocation.setSize(a.width, contentHeight)
		a.profile.setSize(a.width, contentHeight)
		a.ecosystem.setSize(a.width, contentHeight)
		a.devices.setSize(a.width, contentHeight)
		a.filterForm.setSize(a.width)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		if a.filterForm.formActive {
			var cmd tea.Cmd
			a.filterForm, cmd = a.filterForm.update(msg)
			return a, cmd
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Filters):
			var cmd tea.Cmd
			a.filterForm, cmd = a.filterForm.show(a.filters, a.devices.devices)
			return a, cmd
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Refresh):
			return a.loadActive()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewCount
			return a.loadActive()
		}
		for i, b := range tabKeys {
			if key.Matches(msg, b) {
				a.activeView = viewState(i)
				return a.loadActive()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case filtersAppliedMsg:
		a.filters = msg.f
		a.log.Info("filters applied",
			zap.String("device", msg.f.Device),
			zap.String("start", msg.f.Start),
			zap.String("end", msg.f.End),
			zap.String("category", msg.f.Category))
		a.setStatus("筛选已更新", false)
		return a.loadActive()

	case statusMsg:
		a.setStatus(msg.text, msg.isError)
		return a, nil

	case exportDoneMsg:
		a.setStatus("已导出到 "+msg.path, false)
		a.exportPicking = false
		return a, nil
	}

	if a, cmd, ok := a.routeData(msg); ok {
		return a, cmd
	}
	if a.filterForm.formActive {
		var cmd tea.Cmd
		a.filterForm, cmd = a.filterForm.update(msg)
		return a, cmd
	}
	return a.updateActiveView(msg)
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusIsErr = isErr
}

// routeData hands a fetch result to the page that issued it, whichever
// page is on screen.
func (a App) routeData(msg tea.Msg) (App, tea.Cmd, bool) {
	var cmd tea.Cmd
	switch msg.(type) {
	case homeDataMsg:
		a.home, cmd = a.home.update(msg)
	case rankingsDataMsg, appDetailDataMsg:
		a.rankings, cmd = a.rankings.update(msg)
	case trendsDataMsg:
		a.trends, cmd = a.trends.update(msg)
	case categoriesDataMsg:
		a.categories, cmd = a.categories.update(msg)
	case crossDeviceDataMsg:
		a.crossDevice, cmd = a.crossDevice.update(msg)
	case balanceDataMsg:
		a.balance, cmd = a.balance.update(msg)
	case allocationDataMsg:
		a.allocation, cmd = a.allocation.update(msg)
	case profileDataMsg:
		a.profile, cmd = a.profile.update(msg)
	case ecosystemDataMsg:
		a.ecosystem, cmd = a.ecosystem.update(msg)
	case devicesDataMsg:
		a.devices, cmd = a.devices.update(msg)
	default:
		return a, nil, false
	}
	return a, cmd, true
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewRankings:
		a.rankings, cmd = a.rankings.update(msg)
	case viewTrends:
		a.trends, cmd = a.trends.update(msg)
	}
	return a, cmd
}

// loadActive refetches the page on screen with the current filters.
func (a App) loadActive() (App, tea.Cmd) {
	var cmd tea.Cmd
	f := a.filters
	switch a.activeView {
	case viewHome:
		a.home, cmd = a.home.load(f)
	case viewRankings:
		a.rankings, cmd = a.rankings.load(f)
	case viewTrends:
		a.trends, cmd = a.trends.load(f)
	case viewCategories:
		a.categories, cmd = a.categories.load(f)
	case viewCrossDevice:
		a.crossDevice, cmd = a.crossDevice.load(f)
	case viewBalance:
		a.balance, cmd = a.balance.load(f)
	case viewAllocation:
		a.allocation, cmd = a.allocation.load(f)
	case viewProfile:
		a.profile, cmd = a.profile.load(f)
	case viewEcosystem:
		a.ecosystem, cmd = a.ecosystem.load(f)
	case viewDevices:
		a.devices, cmd = a.devices.load(f)
	}
	return a, cmd
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	spin := a.spinner.View()
	var content string
	switch a.activeView {
	case viewHome:
		content = a.home.view(spin)
	case viewRankings:
		content = a.rankings.view(spin)
	case viewTrends:
		content = a.trends.view(spin)
	case viewCategories:
		content = a.categories.view(spin)
	case viewCrossDevice:
		content = a.crossDevice.view(spin)
	case viewBalance:
		content = a.balance.view(spin)
	case viewAllocation:
		content = a.allocation.view(spin)
	case viewProfile:
		content = a.profile.view(spin)
	case viewEcosystem:
		content = a.ecosystem.view(spin)
	case viewDevices:
		content = a.devices.view(spin)
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	switch {
	case a.exportPicking:
		content = a.renderExportPicker()
	case a.filterForm.formActive:
		content = a.filterForm.view()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("screentime")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	scope := mutedStyle.Render(" " + a.filters.describe(a.devices.deviceLabel(a.filters.Device)))

	status := ""
	if a.status != "" {
		if a.statusIsErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = successStyle.Render(" " + a.status)
		}
	}

	left := footerStyle.Render(helpView)
	right := scope + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("导出格式")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range export.Formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f.String()))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: 导出  esc: 取消"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(export.Formats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(export.Formats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport snapshots the rankings as currently configured plus the daily
// stats for the filtered range.
func (a App) doExport(f export.Format) tea.Cmd {
	src, log := a.src, a.log
	q := export.Query{
		Rankings: a.rankings.paramsFor(a.filters),
		Daily: api.DailyParams{
			Start:  a.filters.Start,
			End:    a.filters.End,
			Device: a.filters.Device,
		},
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		now := time.Now()
		snap, err := export.Collect(ctx, src, q, now)
		if err != nil {
			log.Error("export fetch failed", zap.Error(err))
			return statusMsg{text: fmt.Sprintf("导出失败: %v", err), isError: true}
		}
		path, err := export.DefaultPath(f, now)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("导出失败: %v", err), isError: true}
		}
		if err := export.Write(snap, f, path); err != nil {
			log.Error("export write failed", zap.String("format", f.String()), zap.Error(err))
			return statusMsg{text: fmt.Sprintf("%s 导出失败: %v", f, err), isError: true}
		}
		log.Info("snapshot exported",
			zap.String("format", f.String()),
			zap.String("path", path),
			zap.Int("rankings", len(snap.Rankings)),
			zap.Int("daily", len(snap.Daily)))
		return exportDoneMsg{path: path}
	}
}
