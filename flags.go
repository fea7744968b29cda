package main

import (
	"context"
	"errors"
	"time"

	"goyal-store/internal/config"
	"goyal-store/internal/featureflags"
	"goyal-store/internal/logger"
)

const (
	flagsSetupTimeout = 20 * time.Second
	flagsPollInterval = 5 * time.Second
)

// initFlags connects to rox when an app key is configured and returns the
// source the router should read. Rox failures are not fatal: the config
// file switches are used instead. remote reports whether rox is in charge.
func initFlags(ctx context.Context, cfg *config.Config, file *config.Flags) (src flagSource, remote bool) {
	ctx, cancel := context.WithTimeout(ctx, flagsSetupTimeout)
	defer cancel()

	err := featureflags.Init(ctx, cfg.Flags.RolloutAppKey)
	switch {
	case errors.Is(err, featureflags.ErrNoAppKey):
		logger.Debugf("feature flags: %v, using config file switches", err)
		return file, false
	case err != nil:
		logger.Warnf("feature flags init warning: %v, using config file switches", err)
		return file, false
	}
	src = featureflags.Source{}
	logger.Infof("feature flags ready: offline=%v, logLevel=%s", src.Offline(), src.LogLevel())
	return src, true
}

// followLogLevel applies src's log level now and again whenever it changes,
// until ctx ends
func followLogLevel(ctx context.Context, src flagSource, every time.Duration) {
	prev := src.LogLevel()
	if prev != "" {
		logger.SetLevel(prev)
	}

	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		cur := src.LogLevel()
		if cur != prev && cur != "" {
			logger.SetLevel(cur)
			logger.Infof("log level changed to %s", logger.GetLevel())
		}
		prev = cur
	}
}
