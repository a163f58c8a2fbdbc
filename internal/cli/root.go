package cli

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sadopc/screentime/internal/api"
	"github.com/sadopc/screentime/internal/config"
	"github.com/sadopc/screentime/internal/logging"
	"github.com/sadopc/screentime/internal/tui"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// env holds what every command needs once flags and config are resolved.
type env struct {
	v      *viper.Viper
	cfg    *config.Config
	log    *logging.Logger
	client *api.Client
}

func (e *env) setup(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	cfg, err := config.Load(e.v, path)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	client, err := api.NewClient(cfg.ClientConfig("screentime/" + version))
	if err != nil {
		log.Sync()
		return err
	}

	e.cfg, e.log, e.client = cfg, log, client
	e.log.Info("starting",
		zap.String("command", cmd.CommandPath()),
		zap.String("version", version),
		zap.String("base_url", client.BaseURL()),
		zap.String("device", cfg.Device))
	return nil
}

func (e *env) close() {
	if e.log != nil {
		e.log.Sync()
	}
}

func newRootCmd() *cobra.Command {
	e := &env{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "screentime",
		Short: "Terminal dashboard for screen-time analytics",
		Long: `screentime is a terminal dashboard for a screen-time analytics backend.

It shows usage summaries, app rankings, trends, categories and
cross-device analysis for phones and computers.

Run without a subcommand to open the dashboard.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			e.close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, e)
		},
	}

	f := cmd.PersistentFlags()
	f.String("config", "", "config file (default: <user config dir>/screentime/config.yaml)")
	f.String("base-url", api.DefaultBaseURL, "backend API base URL")
	f.Duration("timeout", 10*time.Second, "per-request timeout")
	f.String("device", "", "device ID to filter by (default: all devices)")
	f.String("log-file", "", "log file path (default: <user config dir>/screentime/screentime.log; --log-file= disables logging)")
	f.String("log-level", "info", "log level: debug, info, warn, error")

	bindings := map[string]string{
		"api.base_url": "base-url",
		"api.timeout":  "timeout",
		"device":       "device",
		"log.file":     "log-file",
		"log.level":    "log-level",
	}
	for key, flag := range bindings {
		// Lookup cannot miss: the flags are defined just above.
		_ = e.v.BindPFlag(key, f.Lookup(flag))
	}

	cmd.AddCommand(newExportCmd(e))
	cmd.AddCommand(newDevicesCmd(e))
	return cmd
}

func runDashboard(cmd *cobra.Command, e *env) error {
	app := tui.NewApp(e.client, e.log, tui.Options{
		Device:          e.cfg.Device,
		RankingsLimit:   e.cfg.Rankings.Limit,
		RankingsOrderBy: api.OrderBy(e.cfg.Rankings.OrderBy),
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if _, err := p.Run(); err != nil {
		e.log.Error("dashboard exited", zap.Error(err))
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
