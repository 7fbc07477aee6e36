package cli

import (
	"context"
	"fmt"

	"github.com/rustyeddy/compound/config"
	"github.com/rustyeddy/compound/currency"
	"github.com/rustyeddy/compound/internal/logger"
	"github.com/rustyeddy/compound/journal"
	"github.com/rustyeddy/compound/notify"
	"github.com/rustyeddy/compound/store"
	"github.com/rustyeddy/compound/tracker"
)

// loadConfig reads the config file when given (defaults otherwise), applies
// flag overrides and fills secrets from the environment.
func (rc *RootConfig) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if rc.ConfigPath != "" {
		var err error
		if cfg, err = config.LoadFromFile(rc.ConfigPath); err != nil {
			return nil, err
		}
	}

	if rc.StoreType != "" {
		cfg.Store.Type = rc.StoreType
	}
	if rc.DBPath != "" {
		cfg.Store.Type = "sqlite"
		cfg.Store.Path = rc.DBPath
	}
	if rc.LogLevel != "" {
		cfg.Logging.Level = rc.LogLevel
	}
	if rc.Currency != "" {
		cfg.Currency = rc.Currency
	}

	if rc.EnvFile != "" {
		cfg.LoadEnv(rc.EnvFile)
	} else {
		cfg.LoadEnv()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// app is everything a command needs once the store is open.
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	code  currency.Code
	store store.Store
	coord *tracker.Coordinator
}

func (rc *RootConfig) open(ctx context.Context) (*app, error) {
	cfg, err := rc.loadConfig()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.Logging.Level)
	code := cfg.DisplayCurrency()

	s, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", "type", cfg.Store.Type)

	coord := tracker.New(journal.NewRepository(s),
		tracker.WithLogger(log),
		tracker.WithNotifier(notify.NewTelegram(cfg.Telegram, code, log)),
	)

	return &app{cfg: cfg, log: log, code: code, store: s, coord: coord}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

func (a *app) money(v float64) string {
	return currency.Format(v, a.code)
}

func (a *app) signed(v float64) string {
	return currency.FormatSigned(v, a.code)
}
