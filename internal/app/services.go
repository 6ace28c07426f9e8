package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/zjrosen/feeportal/internal/config"
	"github.com/zjrosen/feeportal/internal/log"
	"github.com/zjrosen/feeportal/internal/mode"
	"github.com/zjrosen/feeportal/internal/payments"
	"github.com/zjrosen/feeportal/internal/submit"
)

// Backend is the set of services built from configuration, plus the
// resources that must be released on exit.
type Backend struct {
	Services mode.Services
	Cache    *payments.CachedProvider
	// Watcher is nil unless data.watch is set.
	Watcher *payments.Watcher

	closers []func() error
}

// NewBackend builds the payment provider chain and the submission simulator.
func NewBackend(ctx context.Context, cfg config.Config) (*Backend, error) {
	b := &Backend{}

	fixture := payments.NewFixtureProvider(cfg.Data.Fixture)
	var source payments.Provider = fixture

	if cfg.Data.Source == config.SourceSQLite {
		seed, err := fixture.Records(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading sqlite seed: %w", err)
		}
		db, err := payments.NewSQLiteProvider(ctx, seed)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, db.Close)
		source = db
	}

	b.Cache = payments.NewCachedProvider(source, cfg.Data.CacheTTL)

	if cfg.Data.Watch {
		w, err := payments.NewWatcher(cfg.Data.Fixture, 0)
		if err != nil {
			_ = b.Close()
			return nil, err
		}
		b.Watcher = w
		b.closers = append(b.closers, w.Close)
	}

	b.Services = mode.Services{
		Config:   cfg,
		Payments: b.Cache,
		Submit: submit.Delays{
			Login:        cfg.Submit.LoginDelay,
			Registration: cfg.Submit.RegistrationDelay,
		},
	}

	log.Debug(log.CatConfig, "Backend ready",
		"source", cfg.Data.Source,
		"fixture", cfg.Data.Fixture,
		"watch", cfg.Data.Watch,
		"cache_ttl", cfg.Data.CacheTTL)
	return b, nil
}

// Options returns the app options that hook up the watcher, if any.
func (b *Backend) Options() []Option {
	if b.Watcher == nil {
		return nil
	}
	return []Option{WithChanges(b.Watcher.Changes(), b.Cache.Invalidate)}
}

// Close releases resources in reverse order of creation.
func (b *Backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i]())
	}
	b.closers = nil
	return errors.Join(errs...)
}
