package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Flags are the runtime switches served to request paths. They replace the
// values polled from a feature-flag service and are updated on config reload.
type Flags struct {
	offline  atomic.Bool
	logLevel atomic.Value
}

// NewFlags seeds flags from cfg
func NewFlags(cfg *Config) *Flags {
	f := &Flags{}
	f.Apply(cfg)
	return f
}

// Apply copies the runtime switches out of cfg
func (f *Flags) Apply(cfg *Config) {
	f.offline.Store(cfg.Offline)
	f.logLevel.Store(cfg.LogLevel)
}

func (f *Flags) Offline() bool { return f.offline.Load() }

func (f *Flags) LogLevel() string {
	v, _ := f.logLevel.Load().(string)
	return v
}

// Watch reloads path whenever it changes and hands the new config to onChange.
// The parent directory is watched so editors that save by rename are seen.
// Parse failures are passed to onError and the previous config stays in force.
func Watch(ctx context.Context, path string, onChange func(*Config), onError func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watch: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return fmt.Errorf("config watch: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("config watch: %w", err)
	}

	go func() {
		defer watcher.Close()

		const debounce = 200 * time.Millisecond
		var timer *time.Timer
		var fire <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					timer.Reset(debounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				cfg, err := Load(abs)
				if err != nil {
					if onError != nil {
						onError(err)
					}
					continue
				}
				onChange(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if onError != nil {
					onError(err)
				}
			}
		}
	}()
	return nil
}
