// Package dedupe tracks identity keys already seen while reading a dataset.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen keys so a player-season row is only used once.
type Deduper interface {
	// SeenAndRecord reports whether key was seen before and records it if not.
	SeenAndRecord(ctx context.Context, key string) bool

	// Seen reports whether key was recorded without recording it.
	Seen(ctx context.Context, key string) bool

	// Size returns the number of distinct keys recorded.
	Size() int
}

type setDeduper struct {
	mu   sync.Mutex
	seen map[string]struct{}
	fold func(string) string
}

// New creates an in-memory deduper.
func New(opts ...Option) Deduper {
	d := &setDeduper{
		fold: func(s string) string { return s },
	}
	capacity := 0
	for _, opt := range opts {
		opt(d, &capacity)
	}
	d.seen = make(map[string]struct{}, capacity)
	return d
}

func (d *setDeduper) SeenAndRecord(_ context.Context, key string) bool {
	key = d.fold(key)
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

func (d *setDeduper) Seen(_ context.Context, key string) bool {
	key = d.fold(key)
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.seen[key]
	return ok
}

func (d *setDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
