// Package refresh runs the periodic title refresh of a timing session.
//
// A refresh task calls its function every interval until stopped. Tasks
// are independent; the caller holds the handle and decides when a task is
// replaced. Stop is synchronous: once it returns the function will not run
// again, so a stopped session never paints a stale title over a fresh one.
//
// # Accuracy
//
// Ticks follow time.Ticker: late ticks are dropped rather than queued, and
// the rendered value is always computed from the wall clock at tick time,
// so drift never accumulates in the displayed elapsed time.
package refresh
