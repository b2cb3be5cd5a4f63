package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/reviewdesk/internal/api"
	"github.com/five82/reviewdesk/internal/config"
	"github.com/five82/reviewdesk/internal/logging"
	"github.com/five82/reviewdesk/internal/metrics"
	"github.com/five82/reviewdesk/internal/prefs"
	"github.com/five82/reviewdesk/internal/state"
	"github.com/five82/reviewdesk/internal/syncer"
	"github.com/five82/reviewdesk/internal/ui"
)

// Options configure the reviewdesk application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty keeps prefs.toml next to the config file
	PollEvery  int    // seconds; zero uses the configured interval
	APIBase    string // overrides the configured API base URL
}

// Run boots the reviewdesk TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.APIBase != "" {
		cfg.APIBase = opts.APIBase
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		File:   cfg.LogFile,
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = config.PrefsPath(opts.ConfigPath)
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn().Err(err).Msg("using default preferences")
	}

	collector := metrics.NewCollector(nil)
	client, err := api.NewClient(cfg.APIBase, api.WithObserver(collector))
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	store := state.NewStore()
	sc := syncer.New(client, store, syncer.Options{
		Logger:          &logger,
		ProductLimit:    cfg.ProductLimit,
		VoteConcurrency: cfg.VoteConcurrency,
		Fanout:          collector,
	})

	if cfg.MetricsAddr != "" {
		addr, err := serveMetrics(ctx, cfg.MetricsAddr, collector.Handler(), logger)
		if err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
		logger.Info().Str("addr", addr).Msg("metrics server listening")
	}

	interval := cfg.PollInterval()
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	logger.Info().
		Str("api_base", client.BaseURL()).
		Dur("poll_interval", interval).
		Msg("reviewdesk starting")

	// Populate the store before the UI draws its first frame.
	if !sc.CheckAuthStatus(ctx) {
		logger.Warn().Msg("review service unreachable at startup")
	}
	sc.FetchProducts(ctx)

	StartPoller(ctx, sc, interval, logger)

	err = ui.Run(ui.Options{
		Context:        ctx,
		Syncer:         sc,
		Store:          store,
		ThemeName:      userPrefs.Theme,
		LastSearch:     userPrefs.LastSearch,
		RecentSearches: userPrefs.RecentSearches,
		PrefsPath:      prefsPath,
		LogPath:        cfg.LogFile,
	})
	logShutdown(logger, err)
	return err
}

func logShutdown(logger zerolog.Logger, err error) {
	if err != nil {
		logger.Error().Err(err).Msg("ui exited with error")
		return
	}
	logger.Info().Msg("reviewdesk stopped")
}
