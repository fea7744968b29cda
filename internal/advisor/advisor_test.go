package advisor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"goyal-store/internal/catalog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeGenerator struct {
	mu    sync.Mutex
	reply string
	err   error
	delay time.Duration
	reqs  []Request
}

func (f *fakeGenerator) Generate(ctx context.Context, req Request) (string, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}

func TestStyleRecommendation_ParsesAndFiltersIDs(t *testing.T) {
	gen := &fakeGenerator{reply: `{"advice":"Go with silk for the wedding.","recommendedIds":["1","42","2","1"]}`}
	a := New(gen)

	rec := a.StyleRecommendation(context.Background(), "wedding outfit", catalog.Seed())
	assert.Equal(t, "Go with silk for the wedding.", rec.Advice)
	assert.Equal(t, []string{"1", "2"}, rec.RecommendedIDs)
	assert.False(t, rec.Fallback)

	require.Len(t, gen.reqs, 1)
	assert.True(t, gen.reqs[0].JSON)
	assert.Contains(t, gen.reqs[0].Prompt, "ID: 1 | Midnight Silk Banarasi Saree (Women, Traditional)")
	assert.Contains(t, gen.reqs[0].Prompt, `"wedding outfit"`)
}

func TestStyleRecommendation_AcceptsFencedJSON(t *testing.T) {
	gen := &fakeGenerator{reply: "```json\n{\"advice\":\"Try the gown.\",\"recommendedIds\":[\"3\"]}\n```"}
	rec := New(gen).StyleRecommendation(context.Background(), "party", catalog.Seed())
	assert.Equal(t, []string{"3"}, rec.RecommendedIDs)
}

func TestStyleRecommendation_Fallbacks(t *testing.T) {
	tests := []struct {
		name   string
		gen    Generator
		prompt string
	}{
		{"no generator", nil, "anything"},
		{"blank prompt", &fakeGenerator{reply: `{"advice":"x"}`}, "   "},
		{"api error", &fakeGenerator{err: errors.New("quota exceeded")}, "anything"},
		{"bad json", &fakeGenerator{reply: "Sure! Here are some ideas"}, "anything"},
		{"no advice", &fakeGenerator{reply: `{"recommendedIds":["1"]}`}, "anything"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ops []string
			a := New(tt.gen, WithFallbackHook(func(op string) { ops = append(ops, op) }))

			rec := a.StyleRecommendation(context.Background(), tt.prompt, catalog.Seed())
			assert.Equal(t, FallbackAdvice, rec.Advice)
			assert.NotNil(t, rec.RecommendedIDs)
			assert.Empty(t, rec.RecommendedIDs)
			assert.True(t, rec.Fallback)
		})
	}
}

func TestStyleRecommendation_Timeout(t *testing.T) {
	gen := &fakeGenerator{reply: `{"advice":"late"}`, delay: time.Second}
	a := New(gen, WithTimeout(20*time.Millisecond))

	start := time.Now()
	rec := a.StyleRecommendation(context.Background(), "winter", catalog.Seed())
	assert.True(t, rec.Fallback)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestGenerateDescription(t *testing.T) {
	gen := &fakeGenerator{reply: "Woven for weddings. Cut for today."}
	a := New(gen, WithStoreName("Test Store"))

	got := a.GenerateDescription(context.Background(), "Silk Kurta", catalog.CategoryMen, catalog.StyleTraditional)
	assert.Equal(t, "Woven for weddings. Cut for today.", got)
	require.Len(t, gen.reqs, 1)
	assert.False(t, gen.reqs[0].JSON)
	assert.True(t, strings.Contains(gen.reqs[0].Prompt, "new item at Test Store"))
	assert.Contains(t, gen.reqs[0].Prompt, "Category: Men")
}

func TestGenerateDescription_Fallback(t *testing.T) {
	var ops []string
	a := New(&fakeGenerator{err: errors.New("network down")}, WithFallbackHook(func(op string) { ops = append(ops, op) }))

	got := a.GenerateDescription(context.Background(), "Silk Kurta", catalog.CategoryMen, catalog.StyleModern)
	assert.Equal(t, FallbackDescription, got)
	assert.Equal(t, []string{"describe"}, ops)

	assert.Equal(t, FallbackDescription, New(nil).GenerateDescription(context.Background(), "", "", ""))
}

func TestTracker_NewerRequestSupersedes(t *testing.T) {
	var tr Tracker

	ctx1, tok1, done1 := tr.Begin(context.Background())
	defer done1()
	assert.True(t, tr.Current(tok1))

	ctx2, tok2, done2 := tr.Begin(context.Background())
	defer done2()

	assert.Greater(t, tok2, tok1)
	assert.False(t, tr.Current(tok1))
	assert.True(t, tr.Current(tok2))
	assert.ErrorIs(t, ctx1.Err(), context.Canceled)
	assert.NoError(t, ctx2.Err())
}

func TestTracker_DoneReleasesContext(t *testing.T) {
	var tr Tracker
	ctx, tok, done := tr.Begin(context.Background())
	done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.True(t, tr.Current(tok), "finishing does not make a request stale")
}

func TestTrackers_PerKey(t *testing.T) {
	var ts Trackers
	a := ts.For("recommend:s1")
	assert.Same(t, a, ts.For("recommend:s1"))
	assert.NotSame(t, a, ts.For("recommend:s2"))
}
