// Package orchestration coordinates concurrent fan-out of a single query to
// a panel of experts and aggregates their timed results. It decouples the
// fan-out/fan-in core from presentation via the Observer interface: progress
// sinks (CLI spinner, TUI, metrics) subscribe to invocation lifecycle events
// without the orchestrator knowing about them.
//
// The core contract: every descriptor yields exactly one result, results are
// returned in input order regardless of completion order, and no single
// invocation failure ever aborts its siblings or the batch.
package orchestration
