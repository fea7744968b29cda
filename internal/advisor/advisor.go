// Package advisor wraps a generative text model for style advice and product
// copy. Calls never fail from the caller's point of view: any error yields a
// fixed fallback.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"goyal-store/internal/catalog"
	"goyal-store/internal/logger"
)

const (
	FallbackAdvice      = "I'm having trouble connecting to my database. Please browse our collections!"
	FallbackDescription = "No description available."
)

// Recommendation is style advice plus the catalog ids it points at
type Recommendation struct {
	Advice         string   `json:"advice"`
	RecommendedIDs []string `json:"recommendedIds"`
	// Fallback is set when Advice is the fixed apology rather than model output
	Fallback bool `json:"fallback,omitempty"`
}

func fallbackRecommendation() Recommendation {
	return Recommendation{Advice: FallbackAdvice, RecommendedIDs: []string{}, Fallback: true}
}

// Advisor issues bounded, single-shot generation requests
type Advisor struct {
	gen        Generator
	timeout    time.Duration
	storeName  string
	onFallback func(op string)
}

// Option configures an Advisor
type Option func(*Advisor)

// WithTimeout bounds each call; zero disables the bound
func WithTimeout(d time.Duration) Option {
	return func(a *Advisor) { a.timeout = d }
}

// WithStoreName sets the shop name used in prompts
func WithStoreName(name string) Option {
	return func(a *Advisor) { a.storeName = name }
}

// WithFallbackHook is called with the operation name whenever a fallback is served
func WithFallbackHook(f func(op string)) Option {
	return func(a *Advisor) { a.onFallback = f }
}

// New creates an Advisor. A nil generator serves fallbacks only.
func New(gen Generator, opts ...Option) *Advisor {
	a := &Advisor{
		gen:       gen,
		timeout:   20 * time.Second,
		storeName: "Goyal Cloth Store",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var errNoGenerator = errors.New("no generator configured")

func (a *Advisor) generate(ctx context.Context, req Request) (string, error) {
	if a.gen == nil {
		return "", errNoGenerator
	}
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	return a.gen.Generate(ctx, req)
}

func (a *Advisor) fellBack(op string, err error) {
	logger.Warnf("advisor %s fallback: %v", op, err)
	if a.onFallback != nil {
		a.onFallback(op)
	}
}

// StyleRecommendation asks the model which catalog products suit prompt.
// Ids the model invents are dropped.
func (a *Advisor) StyleRecommendation(ctx context.Context, prompt string, products []catalog.Product) Recommendation {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return fallbackRecommendation()
	}

	text, err := a.generate(ctx, Request{
		Prompt: recommendationPrompt(a.storeName, prompt, products),
		JSON:   true,
	})
	if err != nil {
		a.fellBack("recommend", err)
		return fallbackRecommendation()
	}

	rec, err := parseRecommendation(text, products)
	if err != nil {
		a.fellBack("recommend", err)
		return fallbackRecommendation()
	}
	return rec
}

// GenerateDescription writes marketing copy for a new product
func (a *Advisor) GenerateDescription(ctx context.Context, name string, category catalog.Category, style catalog.Style) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return FallbackDescription
	}

	text, err := a.generate(ctx, Request{Prompt: descriptionPrompt(a.storeName, name, category, style)})
	if err != nil {
		a.fellBack("describe", err)
		return FallbackDescription
	}
	return text
}

func parseRecommendation(text string, products []catalog.Product) (Recommendation, error) {
	var raw struct {
		Advice         string   `json:"advice"`
		RecommendedIDs []string `json:"recommendedIds"`
	}
	if err := json.Unmarshal([]byte(stripFence(text)), &raw); err != nil {
		return Recommendation{}, fmt.Errorf("parse recommendation: %w", err)
	}
	if strings.TrimSpace(raw.Advice) == "" {
		return Recommendation{}, fmt.Errorf("parse recommendation: missing advice")
	}

	known := make(map[string]bool, len(products))
	for _, p := range products {
		known[p.ID] = true
	}
	ids := []string{}
	for _, id := range raw.RecommendedIDs {
		if known[id] {
			ids = append(ids, id)
			known[id] = false
		}
	}
	return Recommendation{Advice: strings.TrimSpace(raw.Advice), RecommendedIDs: ids}, nil
}

// stripFence removes a markdown code fence some models wrap JSON in
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
