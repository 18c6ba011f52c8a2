package parallel

import "sync"

// loopState is the loop-control state shared by all work items of one
// ForRange/ForEach call. Stop, break and the lowest break index are kept
// in a single mutex-guarded structure so that the minimum-index invariant
// holds under racing Break calls: once set, breakIndex only ever moves
// down.
type loopState struct {
	mu         sync.Mutex
	stop       bool
	brk        bool
	breakIndex int // valid only when brk
}

func (s *loopState) requestStop() {
	s.mu.Lock()
	s.stop = true
	s.mu.Unlock()
}

func (s *loopState) requestBreak(index int) {
	s.mu.Lock()
	if !s.brk || index < s.breakIndex {
		s.brk = true
		s.breakIndex = index
	}
	s.mu.Unlock()
}

func (s *loopState) stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stop
}

func (s *loopState) broken() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.brk
}

// admit reports whether a work item with the given index may still start.
// Nothing starts after a stop; after a break at index k, only items with
// index <= k may start.
func (s *loopState) admit(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop {
		return false
	}
	if s.brk && index > s.breakIndex {
		return false
	}
	return true
}

func (s *loopState) snapshot() (stop, brk bool, breakIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stop, s.brk, s.breakIndex
}

// Loop is the handle a loop body receives to observe and influence the
// surrounding loop. It is shared state bound to the body's own index: Break
// records that index as the cutoff. The zero Loop is not valid; handles are
// created by the engine.
type Loop struct {
	s     *loopState
	index int
}

// Index returns the index of the work item this handle was created for.
// For ForRange it is the range index, for ForEach and ForEachChan the
// arrival index of the element.
func (l Loop) Index() int {
	return l.index
}

// Stop requests that no further work items start, regardless of index.
// Items already running are allowed to finish. Idempotent.
func (l Loop) Stop() {
	l.s.requestStop()
}

// Break requests that no work item with an index greater than this item's
// index starts. Items with a lower or equal index that are already running
// or admitted finish normally. Concurrent Break calls from different items
// resolve to the lowest index.
func (l Loop) Break() {
	l.s.requestBreak(l.index)
}

// Stopped reports whether any item has requested a stop. Bodies may poll
// it to exit early; the engine never interrupts a running body.
func (l Loop) Stopped() bool {
	return l.s.stopped()
}

// Broken reports whether any item has requested a break.
func (l Loop) Broken() bool {
	return l.s.broken()
}
