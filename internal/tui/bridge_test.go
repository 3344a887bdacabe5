package tui

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/agbru/expertpanel/internal/orchestration"
)

func TestProgramRef_Send_NilProgram(t *testing.T) {
	ref := &programRef{} // program is nil
	// Should not panic
	ref.Send(InvocationStartedMsg{Name: "Physics Expert"})
}

func TestTUIObserver_NilProgramIsSafe(t *testing.T) {
	obs := &TUIObserver{ref: &programRef{}}

	// No program attached yet: all callbacks must be harmless no-ops.
	obs.OnStart("Physics Expert")
	obs.OnSuccess("Physics Expert", 10*time.Millisecond)
	obs.OnFailure("Chemistry Expert", 5*time.Millisecond, errors.New("boom"))
}

func TestTUIObserver_ConcurrentCallbacks(t *testing.T) {
	obs := &TUIObserver{ref: &programRef{}}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			obs.OnStart("expert")
			obs.OnSuccess("expert", time.Millisecond)
		}()
	}
	wg.Wait()
}

func TestTUIObserverImplementsObserver(t *testing.T) {
	var _ orchestration.Observer = (*TUIObserver)(nil)
}
