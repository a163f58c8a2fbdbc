package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sadopc/screentime/internal/api"
	"github.com/sadopc/screentime/internal/label"
	"github.com/sadopc/screentime/internal/logging"
)

// viewState represents the currently active view.
type viewState int

const (
	viewHome viewState = iota
	viewRankings
	viewTrends
	viewCategories
	viewCrossDevice
	viewBalance
	viewAllocation
	viewProfile
	viewEcosystem
	viewDevices
	viewCount
)

var viewNames = []string{"首页", "排名", "趋势", "类别", "跨设备", "工作生活", "时间分配", "用户画像", "应用生态", "设备"}

// Source is the data the dashboard reads. *api.Client implements it.
type Source interface {
	Summary(ctx context.Context, p api.DeviceParams) (*api.Summary, error)
	DailyStats(ctx context.Context, p api.DailyParams) ([]api.DailyStat, error)
	Rankings(ctx context.Context, p api.RankingParams) ([]api.AppRanking, error)
	Categories(ctx context.Context, p api.DeviceParams) (api.CategoryStats, error)
	HourlyStats(ctx context.Context, p api.HourlyParams) ([]api.HourlyStat, error)
	Trends(ctx context.Context, p api.TrendParams) ([]api.TrendPoint, error)
	AppDetail(ctx context.Context, packageID string, p api.DeviceParams) (*api.AppDetail, error)
	Devices(ctx context.Context) ([]api.Device, error)
	CrossDeviceComparison(ctx context.Context) (*api.CrossDeviceComparison, error)
	WorkLifeBalance(ctx context.Context) (*api.WorkLifeBalance, error)
	TotalScreentime(ctx context.Context, p api.RangeParams) ([]api.DailyTotal, error)
	SwitchingPatterns(ctx context.Context) ([]api.SwitchingPattern, error)
	AppEcosystem(ctx context.Context) (*api.AppEcosystem, error)
	TimeAllocation(ctx context.Context) (api.TimeAllocation, error)
	UserProfile(ctx context.Context) (*api.UserProfile, error)
}

// deps is shared by every page.
type deps struct {
	src Source
	log *logging.Logger
}

// filters are the user-selected query options applied to every page that
// accepts them. Empty fields are left out of requests.
type filters struct {
	Device   string
	Start    string
	End      string
	Category string
}

// --- Request sequencing ---

type loadState int

const (
	stateIdle loadState = iota
	stateLoading
	stateLoaded
	stateError
)

// request tracks the latest fetch a page issued. Every fetch carries the
// sequence number handed out by begin; a response is applied only if its
// number is still the latest, so a slow earlier response cannot overwrite
// a newer one.
type request struct {
	seq   uint64
	state loadState
}

func (r *request) begin() uint64 {
	r.seq++
	r.state = stateLoading
	return r.seq
}

// settle records the outcome of fetch seq. It returns false, leaving r
// untouched, when seq is stale.
func (r *request) settle(seq uint64, err error) bool {
	if seq != r.seq {
		return false
	}
	if err != nil {
		r.state = stateError
	} else {
		r.state = stateLoaded
	}
	return true
}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// settleFetch applies the bookkeeping every page does on a response:
// drop stale ones, log failures.
func settleFetch(d deps, r *request, page string, seq uint64, err error) bool {
	if !r.settle(seq, err) {
		d.log.Debug("stale response discarded",
			zap.String("page", page), zap.Uint64("seq", seq), zap.Uint64("latest", r.seq))
		return false
	}
	if err != nil {
		d.log.Error("fetch failed", zap.String("page", page), zap.Error(err))
	}
	return true
}

// warnDrift logs a value the label tables do not know.
func warnDrift(d deps, kind, value string) {
	d.log.Warn("unknown label", zap.String("kind", kind), zap.String("value", value))
}

func checkCategory(d deps, s string) label.Category {
	c, ok := label.ParseCategory(s)
	if !ok && s != "" {
		warnDrift(d, "category", s)
	}
	return c
}

func checkProfile(d deps, s string) label.Profile {
	p, ok := label.ParseProfile(s)
	if !ok {
		warnDrift(d, "profile", s)
	}
	return p
}

// warnInvalid logs a response that breaks an invariant the backend should
// uphold. Rendering continues with the data as is.
func warnInvalid(d deps, page string, err error) {
	if err != nil {
		d.log.Warn("response invariant violated", zap.String("page", page), zap.Error(err))
	}
}

// renderState returns the panel for the idle, loading and error states.
// ok is false when the page has data to show.
func renderState(r request, errText, spin string, w int) (string, bool) {
	switch r.state {
	case stateIdle, stateLoading:
		return panelStyle.Width(w).Render(spin + " 加载中..."), true
	case stateError:
		return errorPanelStyle.Width(w).Render(errorStyle.Render(errText)), true
	}
	return "", false
}

func dot(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}

func tag(text, color string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(color)).
		Padding(0, 1).
		Render(text)
}

// bar renders a horizontal bar of width w filled to fraction frac.
func bar(frac float64, w int, color string) string {
	if w < 1 {
		return ""
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	n := int(frac * float64(w))
	filled := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", n))
	empty := lipgloss.NewStyle().Foreground(colorSubtle).Render(strings.Repeat("░", w-n))
	return filled + empty
}

func lastN[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func bulletList(items []string) []string {
	rows := make([]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, "  • "+it)
	}
	return rows
}
