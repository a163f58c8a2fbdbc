package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sadopc/screentime/internal/api"
	"github.com/sadopc/screentime/internal/export"
)

type exportOptions struct {
	format  string
	output  string
	limit   int
	orderBy string
	start   string
	end     string
}

func newExportCmd(e *env) *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export app rankings and daily stats",
		Long: `Export a snapshot of app rankings and daily stats for external analysis.

Examples:
  screentime export --format csv
  screentime export --format json --output usage.json --limit 50
  screentime export --format sqlite --device pixel --start 20240101 --end 20240131`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, e, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", "csv", "output format: csv, json, sqlite")
	f.StringVarP(&opts.output, "output", "o", "", "output file (default: ~/screentime-export-<date>.<ext>)")
	f.IntVarP(&opts.limit, "limit", "n", 0, "number of ranked apps (default: rankings.limit from config)")
	f.StringVar(&opts.orderBy, "order-by", "", "ranking order: duration, launches, notifications (default: rankings.order_by from config)")
	f.StringVar(&opts.start, "start", "", "first day of daily stats, YYYYMMDD")
	f.StringVar(&opts.end, "end", "", "last day of daily stats, YYYYMMDD")
	return cmd
}

func runExport(cmd *cobra.Command, e *env, opts exportOptions) error {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	limit := opts.limit
	if limit == 0 {
		limit = e.cfg.Rankings.Limit
	}
	if limit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}
	orderBy := api.OrderBy(opts.orderBy)
	if orderBy == "" {
		orderBy = api.OrderBy(e.cfg.Rankings.OrderBy)
	}
	if orderBy != "" && !orderBy.Valid() {
		return fmt.Errorf("--order-by %q is not one of duration, launches, notifications", opts.orderBy)
	}

	for flag, v := range map[string]string{"--start": opts.start, "--end": opts.end} {
		if !api.ValidDate(v) {
			return fmt.Errorf("%s %q is not a YYYYMMDD date", flag, v)
		}
	}
	start, end := api.OrderedRange(opts.start, opts.end)

	q := export.Query{
		Rankings: api.RankingParams{Limit: limit, OrderBy: orderBy, Device: e.cfg.Device},
		Daily:    api.DailyParams{Start: start, End: end, Device: e.cfg.Device},
	}
	now := time.Now()
	snap, err := export.Collect(cmd.Context(), e.client, q, now)
	if err != nil {
		e.log.Error("export fetch failed", zap.Error(err))
		return err
	}

	path := opts.output
	if path == "" {
		if path, err = export.DefaultPath(format, now); err != nil {
			return fmt.Errorf("resolve output path: %w", err)
		}
	}
	if err := export.Write(snap, format, path); err != nil {
		e.log.Error("export write failed", zap.String("format", format.String()), zap.Error(err))
		return fmt.Errorf("write %s: %w", format, err)
	}

	e.log.Info("snapshot exported",
		zap.String("format", format.String()),
		zap.String("path", path),
		zap.Int("rankings", len(snap.Rankings)),
		zap.Int("daily", len(snap.Daily)))
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d apps and %d days to %s\n", len(snap.Rankings), len(snap.Daily), path)
	return nil
}
