package parallel

import "time"

type config struct {
	maxParallel int
	cancel      *Signal
	metrics     *Metrics
	onItemDone  func(index int, err error, elapsed time.Duration)
}

// Option configures one engine call.
type Option func(*config)

func buildConfig(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMaxParallel bounds the number of work items that may be in flight at
// the same time. Zero (the default) means unbounded: every admitted item
// runs in its own goroutine immediately.
//
// WithMaxParallel panics if n is negative.
func WithMaxParallel(n int) Option {
	return func(c *config) {
		if n < 0 {
			panic("parallel: max parallelism must be non-negative")
		}
		c.maxParallel = n
	}
}

// WithCancel attaches a cancellation signal to the call. Once the signal
// is set, no further work items are admitted and the call returns the
// canceled outcome after the items already running have settled.
func WithCancel(sig *Signal) Option {
	return func(c *config) {
		c.cancel = sig
	}
}

// WithMetrics attaches Prometheus instrumentation to the call. See
// Metrics for the collectors involved.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithOnItemDone registers a hook invoked after each work item settles.
// The hook receives the item's index, its error (nil on success, a
// PanicError if the body panicked) and its wall-clock duration. It runs
// in the item's goroutine and must not panic.
func WithOnItemDone(fn func(index int, err error, elapsed time.Duration)) Option {
	return func(c *config) {
		c.onItemDone = fn
	}
}
