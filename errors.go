package parallel

import (
	"fmt"
)

// ItemError is the failure of a single work item, tagged with the item's
// index (for InvokeAll, the position of the action in the slice).
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying cause of the item failure.
func (e *ItemError) Unwrap() error {
	return e.Err
}

// AggregateError carries every work-item failure from one engine call.
// Failures appear in the order they were reported, which under concurrency
// is not necessarily index order. The set is always complete: no failure
// is dropped even when several items fail at the same time.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("1 item failed: %v", e.Errors[0])
	}
	return fmt.Sprintf("%d items failed, first: %v", len(e.Errors), e.Errors[0])
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// PanicError is the error type that occurs when a work item panics. The
// panic does not propagate: it is captured at the item boundary and
// reported like any other item failure.
type PanicError struct {
	Value interface{}
	Stack []byte
}

func (err PanicError) Error() string {
	return fmt.Sprintf("panic: %s", err.Value)
}

// Unwrap returns the error passed to panic, or nil if panic was called
// with something other than an error.
func (err PanicError) Unwrap() error {
	if e, ok := err.Value.(error); ok {
		return e
	}
	return nil
}
