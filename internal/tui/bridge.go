package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/expertpanel/internal/orchestration"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIObserver implements orchestration.Observer.
// It forwards invocation lifecycle events as bubbletea messages instead of
// writing to stdout. Safe for concurrent use: tea.Program.Send is.
type TUIObserver struct {
	ref *programRef
}

// Verify interface compliance.
var _ orchestration.Observer = (*TUIObserver)(nil)

// OnStart forwards the start of an invocation to the TUI.
func (o *TUIObserver) OnStart(name string) {
	o.ref.Send(InvocationStartedMsg{Name: name})
}

// OnSuccess forwards a successful invocation to the TUI.
func (o *TUIObserver) OnSuccess(name string, duration time.Duration) {
	o.ref.Send(InvocationSettledMsg{Name: name, Duration: duration})
}

// OnFailure forwards a failed invocation to the TUI.
func (o *TUIObserver) OnFailure(name string, duration time.Duration, err error) {
	o.ref.Send(InvocationSettledMsg{Name: name, Duration: duration, Err: err})
}
