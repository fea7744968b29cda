package main

import (
	"context"
	"fmt"

	"goyal-store/internal/advisor"
	"goyal-store/internal/config"
	"goyal-store/internal/db"
	"goyal-store/internal/logger"
	"goyal-store/internal/persist"
	"goyal-store/internal/shop"
)

// readiness probes the storage backend for /ready
type readiness func(ctx context.Context) error

func alwaysReady(context.Context) error { return nil }

// openBackend builds the storage backend selected by cfg.Driver
func openBackend(ctx context.Context, cfg config.StorageConfig) (persist.Backend, readiness, error) {
	switch cfg.Driver {
	case "memory":
		return persist.NewMemory(), alwaysReady, nil
	case "dir":
		d, err := persist.NewDir(cfg.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("openBackend: %w", err)
		}
		return d, alwaysReady, nil
	}

	dialect, err := persist.DialectFor(cfg.Driver)
	if err != nil {
		return nil, nil, fmt.Errorf("openBackend: %w", err)
	}
	sqlDB, err := db.Open(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("openBackend: %w", err)
	}
	s := persist.NewSQL(sqlDB, dialect, cfg.Table)
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, nil, fmt.Errorf("openBackend: %w", err)
	}
	return s, s.Ping, nil
}

// openStore opens the backend and rehydrates shop state from it. The caller
// closes the returned backend.
func openStore(ctx context.Context, cfg *config.Config, opts ...shop.Option) (*shop.Store, persist.Backend, readiness, error) {
	backend, ready, err := openBackend(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Infof("storage backend: %s", cfg.Storage.Driver)

	opts = append([]shop.Option{shop.WithNamespace(cfg.Storage.Namespace)}, opts...)
	store, err := shop.Open(ctx, backend, opts...)
	if err != nil {
		backend.Close()
		return nil, nil, nil, err
	}
	return store, backend, ready, nil
}

// newAdvisor returns a Gemini-backed advisor, or a fallback-only one when no
// API key is configured
func newAdvisor(ctx context.Context, cfg *config.Config, opts ...advisor.Option) *advisor.Advisor {
	opts = append([]advisor.Option{
		advisor.WithTimeout(cfg.AdvisorTimeout()),
		advisor.WithStoreName(cfg.Advisor.StoreName),
	}, opts...)

	if cfg.Advisor.APIKey == "" {
		logger.Warnf("no GEMINI_API_KEY set; AI stylist will serve fallbacks")
		return advisor.New(nil, opts...)
	}
	gen, err := advisor.NewGenAIGenerator(ctx, cfg.Advisor.APIKey, cfg.Advisor.Model)
	if err != nil {
		logger.Errorf("advisor init: %v", err)
		return advisor.New(nil, opts...)
	}
	logger.Infof("AI stylist using %s", gen.Name())
	return advisor.New(gen, opts...)
}
