// Package parallel runs independent units of work concurrently across a
// bounded set of goroutines, with cooperative early termination and
// aggregated failure reporting.
//
// Three entry points cover the common shapes of parallel work:
//
//   - InvokeAll runs a fixed set of actions and joins them.
//   - ForRange runs a body over an integer range [low, high).
//   - ForEach and ForEachChan run a body over the elements of a slice or
//     channel, each element tagged with a monotonically increasing arrival
//     index.
//
// Loop bodies receive a Loop handle through which they can request Break
// (no new items beyond the recorded index) or Stop (no new items at all).
// Both are cooperative: items already running are never interrupted, only
// further admissions are cut off.
//
// A failing or panicking item never takes its siblings down. All failures
// from one call are collected and returned together as an *AggregateError
// once every admitted item has settled.
package parallel
