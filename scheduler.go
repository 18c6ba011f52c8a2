package parallel

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// workItem is one unit of schedulable execution: an index and an opaque
// body. The scheduler owns the item for the duration of its run.
type workItem struct {
	index int
	run   func(ctx context.Context) error
}

// scheduler admits work items in offer order, runs each in its own
// goroutine with at most maxParallel in flight, and collects failures.
// One scheduler serves exactly one engine call and is discarded when the
// call returns.
type scheduler struct {
	ctx   context.Context
	cfg   config
	state *loopState
	sem   *semaphore.Weighted // nil when unbounded

	wg sync.WaitGroup

	mu       sync.Mutex
	failures []error

	// Set once at the start of dispatch, then touched only by the
	// dispatch goroutine.
	runCtx   context.Context
	canceled bool
}

func newScheduler(ctx context.Context, cfg config, state *loopState) *scheduler {
	s := &scheduler{
		ctx:   ctx,
		cfg:   cfg,
		state: state,
	}
	if cfg.maxParallel > 0 {
		s.sem = semaphore.NewWeighted(int64(cfg.maxParallel))
	}
	return s
}

// canceledNow reports whether cancellation has been requested, either via
// the caller's context or the attached signal.
func (s *scheduler) canceledNow() bool {
	if s.ctx.Err() != nil {
		return true
	}
	return s.cfg.cancel != nil && s.cfg.cancel.IsSet()
}

func (s *scheduler) markCanceled() {
	s.canceled = true
}

// dispatch pulls items from next and admits them until the source is
// exhausted or admission is cut off by cancellation, stop or a break
// index. It returns only after every launched item has settled.
//
// next receives a context that closes when cancellation is requested, so
// blocking sources (channels) do not stall a canceled call.
func (s *scheduler) dispatch(next func(ctx context.Context) (workItem, bool)) {
	ctx := s.ctx
	if s.cfg.cancel != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		go func() {
			select {
			case <-s.cfg.cancel.Done():
				cancel()
			case <-ctx.Done():
			}
		}()
	}
	// Items run under the same context that gates admission, so a body
	// that blocks on ctx also observes the attached signal.
	s.runCtx = ctx

	for {
		if s.canceledNow() {
			s.markCanceled()
			break
		}
		item, ok := next(ctx)
		if !ok {
			break
		}
		if !s.state.admit(item.index) {
			break
		}
		if s.sem != nil {
			if err := s.sem.Acquire(ctx, 1); err != nil {
				s.markCanceled()
				break
			}
		}
		// A slot can free up long after it was requested; re-check the
		// admission conditions right before the item starts.
		if s.canceledNow() {
			s.release()
			s.markCanceled()
			break
		}
		if !s.state.admit(item.index) {
			s.release()
			break
		}
		s.launch(item)
	}

	s.wg.Wait()
}

func (s *scheduler) release() {
	if s.sem != nil {
		s.sem.Release(1)
	}
}

func (s *scheduler) launch(item workItem) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.release()
		s.runItem(item)
	}()
}

// runItem executes one work item behind a recovery boundary. A failing or
// panicking item never takes its siblings down: the failure is recorded
// and the remaining items keep running.
func (s *scheduler) runItem(item workItem) {
	s.cfg.metrics.itemStarted()
	start := time.Now()
	err := runGuarded(s.runCtx, item.run)
	elapsed := time.Since(start)
	s.cfg.metrics.itemSettled(err, elapsed)

	if s.cfg.onItemDone != nil {
		s.cfg.onItemDone(item.index, err, elapsed)
	}

	if err != nil {
		s.mu.Lock()
		s.failures = append(s.failures, &ItemError{Index: item.index, Err: err})
		s.mu.Unlock()
	}
}

// runGuarded executes the body in the current goroutine, recovering from
// panics. A panic is returned as PanicError with the stack of the panic
// location.
func runGuarded(ctx context.Context, body func(ctx context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = PanicError{Value: p, Stack: debug.Stack()}
		}
	}()
	return body(ctx)
}

// finalize turns the settled state of the call into its outcome. Failures
// take priority over cancellation, which takes priority over the loop
// result.
func (s *scheduler) finalize() (Result, error) {
	if len(s.failures) > 0 {
		return Result{}, &AggregateError{Errors: s.failures}
	}
	if s.canceled {
		if err := s.ctx.Err(); err != nil {
			return Result{}, err
		}
		return Result{}, ErrCanceled
	}
	stop, brk, breakIndex := s.state.snapshot()
	r := Result{Completed: !stop && !brk}
	if brk {
		r.Broken = true
		r.LowestBreak = breakIndex
	}
	return r, nil
}
