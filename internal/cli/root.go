package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/internal/logging"
	"github.com/rustyeddy/tradejournal/store"
	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

// skipConfig marks commands that must run even when the config is broken.
const skipConfig = "skip-config"

// RootConfig holds the persistent flags.
type RootConfig struct {
	ConfigPath string
	DBPath     string
	LogLevel   string
	NoColor    bool
	JSON       bool
}

// App holds what every command needs once flags and config are resolved.
type App struct {
	rc     RootConfig
	Config *config.Config
	Logger zerolog.Logger
	Now    func() time.Time

	store store.Store
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{Now: time.Now})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tradejournal",
		Short: "Log FX trades, track goals and size positions",
		Long: `Tradejournal keeps a journal of FX trades and the goals they count toward.

It provides tools for:
  - Logging, closing and reviewing trades
  - Win rate, profit factor, streaks and per-pair performance
  - Goals with progress, trend, deadlines and alerts
  - Risk-based position sizing`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&app.rc.ConfigPath, "config", "", "Path to config file (default ~/.tradejournal/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.rc.DBPath, "db", "", "SQLite journal database (overrides the configured store)")
	cmd.PersistentFlags().StringVar(&app.rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().BoolVar(&app.rc.NoColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().BoolVar(&app.rc.JSON, "json", false, "Output in JSON format")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if _, ok := cmd.Annotations[skipConfig]; ok {
			app.Config = config.Default()
			app.Logger = zerolog.Nop()
			return nil
		}
		return app.init(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.Close()
	}

	cmd.AddCommand(
		newTradesCmd(app),
		newStatsCmd(app),
		newGoalsCmd(app),
		newRiskCmd(app),
		newConfigCmd(app),
		newVersionCmd(),
	)

	return cmd
}

func (a *App) init(cmd *cobra.Command) error {
	path := a.rc.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if a.rc.DBPath != "" {
		cfg.Store.Type = store.TypeSQLite
		cfg.Store.DBPath = a.rc.DBPath
	}
	if a.rc.LogLevel != "" {
		cfg.Log.Level = a.rc.LogLevel
	}

	a.Config = cfg
	a.Logger = logging.WithOperation(logging.New(cfg.Log, cmd.ErrOrStderr(), a.rc.NoColor), cmd.CommandPath())
	a.Logger.Debug().Str("config", path).Str("store", cfg.Store.Type).Msg("config loaded")
	return nil
}

// Store opens the configured store on first use.
func (a *App) Store() (store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	cfg := a.Config.Store
	target := cfg.DBPath
	if cfg.Type == store.TypeFile {
		target = cfg.DataFile
	}
	if dir := filepath.Dir(target); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	s, err := store.Open(cfg, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.store = s
	return s, nil
}

func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

func (a *App) output(cmd *cobra.Command) *Output {
	return NewOutput(cmd.OutOrStdout(), a.rc.NoColor, a.rc.JSON)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Annotations: map[string]string{skipConfig: ""},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tradejournal %s\n", Version)
		},
	}
}

func Execute() {
	app := &App{Now: time.Now}
	err := newRootCmd(app).Execute()
	_ = app.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
