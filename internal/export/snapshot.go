package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sadopc/screentime/internal/api"
)

// Format selects the output encoding.
type Format int

const (
	FormatCSV Format = iota
	FormatJSON
	FormatSQLite
)

var formatNames = []string{"CSV", "JSON", "SQLite"}

// Formats lists every format in picker order.
var Formats = []Format{FormatCSV, FormatJSON, FormatSQLite}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

func (f Format) Ext() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatSQLite:
		return "db"
	}
	return "csv"
}

// ParseFormat accepts "csv", "json" or "sqlite" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "sqlite", "db":
		return FormatSQLite, nil
	}
	return 0, fmt.Errorf("unknown export format %q (want csv, json or sqlite)", s)
}

// Snapshot is what gets exported: the rankings and daily stats as the
// backend returned them.
type Snapshot struct {
	ExportedAt time.Time
	Device     string
	Rankings   []api.AppRanking
	Daily      []api.DailyStat
}

// Fetcher is the part of the API client a snapshot reads from.
type Fetcher interface {
	Rankings(ctx context.Context, p api.RankingParams) ([]api.AppRanking, error)
	DailyStats(ctx context.Context, p api.DailyParams) ([]api.DailyStat, error)
}

// Query selects what Collect fetches. The snapshot is labeled with the
// rankings device.
type Query struct {
	Rankings api.RankingParams
	Daily    api.DailyParams
}

// Collect fetches rankings then daily stats and stamps the result with now.
func Collect(ctx context.Context, f Fetcher, q Query, now time.Time) (Snapshot, error) {
	rs, err := f.Rankings(ctx, q.Rankings)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch rankings: %w", err)
	}
	ds, err := f.DailyStats(ctx, q.Daily)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch daily stats: %w", err)
	}
	return Snapshot{
		ExportedAt: now,
		Device:     q.Rankings.Device,
		Rankings:   rs,
		Daily:      ds,
	}, nil
}

// Write encodes s to path in format f.
func Write(s Snapshot, f Format, path string) error {
	switch f {
	case FormatCSV:
		return ToCSV(s, path)
	case FormatJSON:
		return ToJSON(s, path)
	case FormatSQLite:
		return ToSQLite(s, path)
	}
	return fmt.Errorf("unknown export format %d", int(f))
}

// DefaultPath returns ~/screentime-export-YYYY-MM-DD.<ext>
func DefaultPath(f Format, now time.Time) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fmt.Sprintf("screentime-export-%s.%s", now.Format("2006-01-02"), f.Ext())), nil
}

func deviceLabel(d string) string {
	if d == "" {
		return "all"
	}
	return d
}
