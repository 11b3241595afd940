// Package repository defines the activity registry interface and errors.
package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMetrics toggles publishing roster gauges on every change.
func WithMetrics(enabled bool) Option {
	return func(s *MemoryStore) {
		s.metricsEnabled = enabled
	}
}
