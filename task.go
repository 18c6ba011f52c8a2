package parallel

import "context"

// A Task is one unit of work given to InvokeAll.
//
// The simple signature makes it possible to pass in code that is not aware
// of this package. When ctx is closed, the function should finish as soon
// as possible and return ctx.Err(); the engine itself never interrupts a
// running task.
//
// A task reports a problem by returning an error. A panic inside a task is
// captured at the task boundary and reported as a PanicError.
type Task func(ctx context.Context) error

// RangeBody is the body of a ForRange loop. It receives the range index
// and a Loop handle bound to that index.
type RangeBody func(ctx context.Context, index int, loop Loop) error

// EachBody is the body of a ForEach or ForEachChan loop. It receives the
// element, its arrival index and a Loop handle bound to that index.
type EachBody[T any] func(ctx context.Context, item T, index int, loop Loop) error
