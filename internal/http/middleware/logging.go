package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"goyal-store/internal/logger"
)

// Recorder receives one observation per served request
type Recorder interface {
	ObserveRequest(route string, status int, elapsed time.Duration)
}

type options struct {
	skips    map[string]struct{}
	recorder Recorder
}

// Option configures LogRequests
type Option func(*options)

// WithSkips suppresses logging for the given exact paths. Metrics are still recorded.
func WithSkips(paths ...string) Option {
	return func(o *options) {
		for _, p := range paths {
			o.skips[p] = struct{}{}
		}
	}
}

// WithRecorder sends request timings to r
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		o.recorder = r
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// LogRequests logs method, path, status and latency of each request
func LogRequests(opts ...Option) mux.MiddlewareFunc {
	o := &options{skips: map[string]struct{}{}}
	for _, opt := range opts {
		opt(o)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r)
			if sw.status == 0 {
				sw.status = http.StatusOK
			}
			elapsed := time.Since(start)

			if o.recorder != nil {
				o.recorder.ObserveRequest(routeName(r), sw.status, elapsed)
			}
			if _, skip := o.skips[r.URL.Path]; skip {
				return
			}
			logger.L().Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", sw.status),
				zap.Int("bytes", sw.bytes),
				zap.Duration("elapsed", elapsed),
			)
		})
	}
}

// routeName prefers the mux path template so ids do not explode label cardinality
func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
