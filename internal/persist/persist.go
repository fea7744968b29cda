// Package persist holds the key/value backends the shop store mirrors its
// collections to. Every value is a JSON document owned by the caller.
package persist

import (
	"context"
	"errors"
)

// ErrClosed is returned by backends used after Close
var ErrClosed = errors.New("persist: backend closed")

// Backend stores one JSON blob per key
type Backend interface {
	// Load returns the stored blob; ok is false when the key was never saved.
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)
	Save(ctx context.Context, key string, value []byte) error
	Close() error
}

// BatchLoader is implemented by backends that can fetch several keys in one round trip
type BatchLoader interface {
	LoadAll(ctx context.Context, keys []string) (map[string][]byte, error)
}

// LoadAll fetches keys from b, using a single batch call when the backend supports it.
// Missing keys are absent from the result.
func LoadAll(ctx context.Context, b Backend, keys []string) (map[string][]byte, error) {
	if bl, ok := b.(BatchLoader); ok {
		return bl.LoadAll(ctx, keys)
	}
	out := make(map[string][]byte, len(keys))
	for _, k := range keys {
		v, ok, err := b.Load(ctx, k)
		if err != nil {
			return nil, err
		}
		if ok {
			out[k] = v
		}
	}
	return out, nil
}
