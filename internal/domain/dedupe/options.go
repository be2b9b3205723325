package dedupe

import "strings"

// Option applies a configuration option to the deduper.
type Option func(d *setDeduper, capacity *int)

// WithCapacity pre-sizes the key set.
func WithCapacity(n int) Option {
	return func(_ *setDeduper, capacity *int) {
		if n > 0 {
			*capacity = n
		}
	}
}

// WithCaseFolding compares keys case-insensitively and ignores outer spaces.
func WithCaseFolding() Option {
	return func(d *setDeduper, _ *int) {
		d.fold = func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	}
}
