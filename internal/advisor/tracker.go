package advisor

import (
	"context"
	"sync"
)

// Token identifies one request issued through a Tracker
type Token uint64

// Tracker hands out increasing tokens for one call site. Starting a request
// cancels the one before it, and only the newest token is current, so a slow
// stale answer can be recognised and dropped.
type Tracker struct {
	mu     sync.Mutex
	last   Token
	cancel context.CancelFunc
}

// Begin starts a request. The returned context is cancelled when a newer
// request begins or when done is called.
func (t *Tracker) Begin(ctx context.Context) (context.Context, Token, func()) {
	ctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.last++
	tok := t.last
	t.cancel = cancel
	t.mu.Unlock()

	done := func() {
		t.mu.Lock()
		if t.last == tok {
			t.cancel = nil
		}
		t.mu.Unlock()
		cancel()
	}
	return ctx, tok, done
}

// Current reports whether tok is still the newest request
func (t *Tracker) Current(tok Token) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tok == t.last
}

// Trackers keeps one Tracker per key, typically call site plus session
type Trackers struct {
	mu sync.Mutex
	m  map[string]*Tracker
}

// For returns the tracker for key, creating it on first use
func (ts *Trackers) For(key string) *Tracker {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.m == nil {
		ts.m = map[string]*Tracker{}
	}
	t, ok := ts.m[key]
	if !ok {
		t = &Tracker{}
		ts.m[key] = t
	}
	return t
}
