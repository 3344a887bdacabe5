package tui

import (
	"time"

	"github.com/agbru/expertpanel/internal/orchestration"
)

// InvocationStartedMsg signals that an expert's completion request has been
// issued.
type InvocationStartedMsg struct {
	Name string
}

// InvocationSettledMsg signals that an expert's invocation finished, either
// way.
type InvocationSettledMsg struct {
	Name     string
	Duration time.Duration
	Err      error
}

// BatchCompleteMsg carries the joined batch outcome.
type BatchCompleteMsg struct {
	Summary  orchestration.Summary
	ExitCode int
}

// ContextCancelledMsg signals that the batch context was cancelled.
type ContextCancelledMsg struct {
	Err error
}

// TickMsg drives the elapsed-time display.
type TickMsg time.Time

// SysStatsMsg carries a resource usage snapshot for the stats line.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
	Goroutines int
}
