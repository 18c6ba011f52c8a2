package parallel

import (
	"context"
)

// Result describes how a ForRange, ForEach or ForEachChan call ended when
// no failure and no cancellation occurred.
//
// Exactly one of three shapes is possible: the loop ran to completion
// (Completed true), a break cut it short (Broken true, LowestBreak set to
// the lowest index at which Break was called), or a stop cut it short
// (Completed and Broken both false). Stop never records an index, even if
// a break would have.
type Result struct {
	Completed   bool
	Broken      bool
	LowestBreak int // meaningful only when Broken
}

// InvokeAll runs every action at most once, concurrently, and waits for
// all of them to settle. There is no loop control: actions cannot break or
// stop the batch, only cancellation prevents actions from starting.
//
// If one or more actions fail or panic, InvokeAll returns an
// *AggregateError carrying every failure. If cancellation was observed
// before all actions were admitted, it returns the canceled outcome after
// the actions already running have settled; failures take priority.
func InvokeAll(ctx context.Context, actions []Task, opts ...Option) error {
	s := newScheduler(ctx, buildConfig(opts), &loopState{})

	i := 0
	s.dispatch(func(context.Context) (workItem, bool) {
		if i >= len(actions) {
			return workItem{}, false
		}
		item := workItem{index: i, run: actions[i]}
		i++
		return item, true
	})

	_, err := s.finalize()
	return err
}

// ForRange runs body for every index in [low, high), concurrently. Indices
// are offered in their natural order; completion order is unspecified.
// A range with high <= low is empty and completes immediately.
func ForRange(ctx context.Context, low, high int, body RangeBody, opts ...Option) (Result, error) {
	state := &loopState{}
	s := newScheduler(ctx, buildConfig(opts), state)

	i := low
	s.dispatch(func(context.Context) (workItem, bool) {
		if i >= high {
			return workItem{}, false
		}
		index := i
		i++
		return workItem{index: index, run: func(ctx context.Context) error {
			return body(ctx, index, Loop{s: state, index: index})
		}}, true
	})

	return s.finalize()
}

// ForEach runs body for every element of items, concurrently. The arrival
// index of an element is its position in the slice.
func ForEach[T any](ctx context.Context, items []T, body EachBody[T], opts ...Option) (Result, error) {
	state := &loopState{}
	s := newScheduler(ctx, buildConfig(opts), state)

	i := 0
	s.dispatch(func(context.Context) (workItem, bool) {
		if i >= len(items) {
			return workItem{}, false
		}
		index, v := i, items[i]
		i++
		return workItem{index: index, run: func(ctx context.Context) error {
			return body(ctx, v, index, Loop{s: state, index: index})
		}}, true
	})

	return s.finalize()
}

// ForEachChan runs body for every value received from items until the
// channel is closed. Arrival indices are assigned at admission time, in
// receive order, monotonically increasing and never reused; they are the
// indices Break cuts off on.
//
// If cancellation is requested while waiting for the next value, the call
// stops receiving and returns the canceled outcome once in-flight items
// have settled.
func ForEachChan[T any](ctx context.Context, items <-chan T, body EachBody[T], opts ...Option) (Result, error) {
	state := &loopState{}
	s := newScheduler(ctx, buildConfig(opts), state)

	i := 0
	s.dispatch(func(ctx context.Context) (workItem, bool) {
		select {
		case v, ok := <-items:
			if !ok {
				return workItem{}, false
			}
			index := i
			i++
			return workItem{index: index, run: func(ctx context.Context) error {
				return body(ctx, v, index, Loop{s: state, index: index})
			}}, true
		case <-ctx.Done():
			s.markCanceled()
			return workItem{}, false
		}
	})

	return s.finalize()
}
