package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"goyal-store/internal/advisor"
	"goyal-store/internal/config"
	"goyal-store/internal/events"
	"goyal-store/internal/featureflags"
	"goyal-store/internal/logger"
	"goyal-store/internal/metrics"
	"goyal-store/internal/shop"
)

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storefront HTTP API",
	Long: `Starts the storefront API. The config file is watched: changes to
log_level and offline apply without a restart. With a rollout app key
(flags.rollout_app_key or ROLLOUT_APP_KEY) both switches come from rox instead.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := appConfig
	logger.Infof("log level set to %s", logger.GetLevel())
	if cfg.Auth.JWTSecret == "" {
		logger.Warnf("JWT_SECRET not set; admin endpoints will reject every request")
	}

	m := metrics.New(prometheus.NewRegistry())
	fileFlags := config.NewFlags(cfg)
	flags, remote := initFlags(ctx, cfg, fileFlags)
	defer featureflags.Shutdown()
	if remote && !verbose {
		go followLogLevel(ctx, flags, flagsPollInterval)
	}

	store, backend, ready, err := openStore(ctx, cfg, shop.WithObserver(m))
	if err != nil {
		return err
	}
	defer backend.Close()

	adv := newAdvisor(ctx, cfg, advisor.WithFallbackHook(m.AdvisorFallback))

	pub := events.NewKafka(cfg.Events.Brokers, cfg.Events.Topic)
	defer pub.Close()
	if len(cfg.Events.Brokers) > 0 {
		logger.Infof("publishing order events to %s", cfg.Events.Topic)
	}

	// Hot reload of runtime switches
	onChange := func(next *config.Config) {
		fileFlags.Apply(next)
		if lvl := next.LogLevel; lvl != "" && !verbose && !remote {
			prev := logger.GetLevel()
			logger.SetLevel(lvl)
			if cur := logger.GetLevel(); cur != prev {
				logger.Infof("log level changed to %s", cur)
			}
		}
		logger.Infof("config reloaded: offline=%v", next.Offline)
	}
	onError := func(err error) { logger.Warnf("config reload: %v", err) }
	if err := config.Watch(ctx, configPath, onChange, onError); err != nil {
		logger.Warnf("config watch disabled: %v", err)
	}

	r := newRouter(routerDeps{
		flags:   flags,
		metrics: m,
		ready:   ready,
		shop:    shop.NewHandler(store, adv, pub),
		secret:  cfg.Auth.JWTSecret,
	})

	s := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("goyal-store listening on %s", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		logger.Infof("shutting down")
		return s.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
