package main

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"goyal-store/internal/config"
	"goyal-store/internal/featureflags"
	mw "goyal-store/internal/http/middleware"
	"goyal-store/internal/metrics"
	"goyal-store/internal/shop"
)

// flagSource is the set of runtime switches the router consults. Both the
// config file flags and the rox flags satisfy it.
type flagSource interface {
	Offline() bool
	LogLevel() string
}

var (
	_ flagSource = (*config.Flags)(nil)
	_ flagSource = featureflags.Source{}
)

type routerDeps struct {
	flags   flagSource
	metrics *metrics.Metrics
	ready   readiness
	shop    *shop.Handler
	secret  string
}

func newRouter(d routerDeps) *mux.Router {
	r := mux.NewRouter()

	// Offline kill-switch; health, readiness and metrics stay reachable
	offlineGate := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/health", "/ready", "/metrics", "/_flags":
				next.ServeHTTP(w, r)
				return
			}
			if d.flags.Offline() {
				http.Error(w, "service temporarily offline", http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
	r.Use(offlineGate)
	r.Use(mw.LogRequests(mw.WithSkips("/health", "/ready", "/metrics"), mw.WithRecorder(d.metrics)))

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := d.ready(r.Context()); err != nil {
			http.Error(w, "storage not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/_flags", func(w http.ResponseWriter, _ *http.Request) {
		resp := map[string]interface{}{
			"offline":  d.flags.Offline(),
			"logLevel": d.flags.LogLevel(),
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}).Methods(http.MethodGet)

	r.Handle("/metrics", d.metrics.Handler()).Methods(http.MethodGet)

	d.shop.Routes(r, d.secret)
	return r
}
