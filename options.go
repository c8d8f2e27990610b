package ctxpool

import "time"

// Option configures a Pool during creation.
// Use functional options to customize Pool behavior.
//
// Example:
//
//	// Registered defaults (wgpu factory/detector via blank import)
//	pool := ctxpool.New()
//
//	// Deterministic pool for tests (dependency injection)
//	pool := ctxpool.New(
//	    ctxpool.WithFactory(fakeFactory),
//	    ctxpool.WithCapacity(2),
//	)
type Option func(*poolOptions)

// poolOptions holds optional configuration for Pool creation.
type poolOptions struct {
	factory     Factory
	detector    Detector
	capacity    int
	capacitySet bool // false means "detect lazily on first acquire"
	now         func() time.Time
}

// defaultPoolOptions returns the default pool options.
func defaultPoolOptions() poolOptions {
	return poolOptions{
		factory:  nil, // falls back to DefaultFactory() at acquire time
		detector: nil, // falls back to DefaultDetector() at detection time
		now:      time.Now,
	}
}

// WithFactory sets the resource factory for the Pool, overriding the
// process-wide registered factory. Use this for dependency injection of
// a deterministic test factory.
func WithFactory(f Factory) Option {
	return func(o *poolOptions) {
		o.factory = f
	}
}

// WithDetector sets the capability detector for the Pool, overriding the
// process-wide registered detector.
func WithDetector(d Detector) Option {
	return func(o *poolOptions) {
		o.detector = d
	}
}

// WithCapacity fixes the pool capacity up front, skipping lazy capability
// detection entirely. Values below zero are clamped to zero (a pool that
// admits nothing).
func WithCapacity(n int) Option {
	return func(o *poolOptions) {
		if n < 0 {
			n = 0
		}
		o.capacity = n
		o.capacitySet = true
	}
}

// WithClock sets the time source used for slot timestamps.
// Intended for tests that assert on last-access ordering.
func WithClock(now func() time.Time) Option {
	return func(o *poolOptions) {
		if now != nil {
			o.now = now
		}
	}
}
