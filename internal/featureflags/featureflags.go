// Package featureflags exposes the runtime switches managed remotely in
// CloudBees Feature Management (rox). Without an app key the package stays
// idle and callers fall back to the config file switches.
package featureflags

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rollout/rox-go/v5/server"
)

// Namespace prefixes every flag name in the rox dashboard
const Namespace = "storefront"

// ErrNoAppKey is returned by Init when no rox app key is configured
var ErrNoAppKey = errors.New("no rollout app key configured")

// Flags is the registered rox container. Field names become flag names.
type Flags struct {
	Offline  server.RoxFlag
	LogLevel server.RoxString
}

var (
	values = &Flags{
		Offline:  server.NewRoxFlag(false),
		LogLevel: server.NewRoxString("info", []string{"debug", "info", "warn", "error"}),
	}

	mu  sync.Mutex
	rox *server.Rox
)

// Init registers the flags and connects to rox. An empty appKey falls back to
// ROLLOUT_APP_KEY. Setup that outlasts ctx returns an error but keeps
// running in the background, so Shutdown must still be called.
func Init(ctx context.Context, appKey string) error {
	if appKey == "" {
		appKey = os.Getenv("ROLLOUT_APP_KEY")
	}
	if appKey == "" {
		return ErrNoAppKey
	}

	mu.Lock()
	if rox != nil {
		mu.Unlock()
		return errors.New("feature flags already initialised")
	}
	rox = server.NewRox()
	rox.Register(Namespace, values)
	done := rox.Setup(appKey, server.NewRoxOptions(server.RoxOptionsBuilder{}))
	mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("rollout setup: %w", ctx.Err())
	}
}

// Values returns the registered flags
func Values() *Flags { return values }

// Shutdown stops the rox client. Safe to call when Init failed.
func Shutdown() {
	mu.Lock()
	defer mu.Unlock()
	if rox != nil {
		rox.Shutdown()
		rox = nil
	}
}

// Source reads the switches the HTTP layer consults from rox
type Source struct{}

func (Source) Offline() bool    { return values.Offline.IsEnabled(nil) }
func (Source) LogLevel() string { return values.LogLevel.GetValue(nil) }
