package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/vikash893/newsdigest/internal/aggregate"
	"github.com/vikash893/newsdigest/internal/config"
	"github.com/vikash893/newsdigest/internal/news"
	"github.com/vikash893/newsdigest/internal/store"
	"github.com/vikash893/newsdigest/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "newsdigest",
	Short: "Terminal news dashboard",
	Long:  "newsdigest aggregates headlines from NewsAPI into a personalized terminal dashboard with category filters and search.",
	RunE:  runDashboard,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(headlinesCmd)
	rootCmd.AddCommand(categoriesCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("newsdigest %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	apiKey := cfg.ResolvedAPIKey()
	client := news.NewClient(apiKey, news.WithBaseURL(cfg.ResolvedBaseURL()))
	cache := news.NewCache(cfg.CacheTTLDuration())
	logger := dashboardLogger()
	aggregator := aggregate.New(client, cache, logger)

	prefs, err := store.Open(config.StorePath())
	if err != nil {
		return fmt.Errorf("opening preference store: %w", err)
	}
	defer prefs.Close()

	saved, err := prefs.SelectedCategories()
	if err != nil {
		// A corrupt preference row should not block the dashboard.
		logger.Warn("reading saved categories failed", "error", err)
		saved = nil
	}
	lastOpened, err := prefs.LastOpened()
	if err != nil {
		logger.Warn("reading last-opened instant failed", "error", err)
		lastOpened = time.Time{}
	}
	if err := prefs.SetLastOpened(); err != nil {
		logger.Warn("recording last-opened instant failed", "error", err)
	}

	return tui.Run(tui.RunOpts{
		Aggregator:      aggregator,
		Prefs:           prefs,
		SavedCategories: saved,
		LastOpened:      lastOpened,
		APIKeyMissing:   apiKey == "",
		Version:         version,
	})
}

// dashboardLogger writes to a debug log file when NEWSDIGEST_DEBUG is set and
// discards everything otherwise, keeping the alternate screen clean.
func dashboardLogger() *slog.Logger {
	if os.Getenv("NEWSDIGEST_DEBUG") == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	path := filepath.Join(xdg.StateHome, "newsdigest", "debug.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewJSONHandler(f, nil))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
