package parallel

import (
	"context"
	"errors"
	"sync"
)

// ErrCanceled is returned by the engine entry points when cancellation was
// observed at an admission boundary, after every item admitted so far has
// settled. Use IsCanceled to test for the canceled outcome regardless of
// whether it originated from a Signal or from the caller's context.
var ErrCanceled = errors.New("parallel: canceled")

// Signal is a set-once cancellation flag shared between a caller and the
// work running on its behalf. Setting the signal prevents any further work
// items from being admitted; items already running are not interrupted
// unless they poll the signal themselves.
//
// Create a Signal with NewSignal. A Signal cannot be reset.
type Signal struct {
	once sync.Once
	done chan struct{}
}

// NewSignal creates an unset Signal.
func NewSignal() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Set requests cancellation. It is safe to call from any goroutine and is
// idempotent.
func (s *Signal) Set() {
	s.once.Do(func() {
		close(s.done)
	})
}

// IsSet reports whether cancellation has been requested.
func (s *Signal) IsSet() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed when the signal is set.
func (s *Signal) Done() <-chan struct{} {
	return s.done
}

// IsCanceled reports whether err represents the canceled outcome of an
// engine call, whichever way cancellation was requested.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
