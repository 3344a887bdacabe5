package cli

import (
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"
)

// MockSpinner for testing
type MockSpinner struct {
	mu      sync.Mutex
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffix = suffix
}

func (m *MockSpinner) Suffix() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.suffix
}

// withMockSpinner swaps the spinner constructor for the duration of a test.
func withMockSpinner(t *testing.T) *MockSpinner {
	t.Helper()
	mock := &MockSpinner{}
	orig := newSpinner
	newSpinner = func(options ...spinner.Option) Spinner { return mock }
	t.Cleanup(func() { newSpinner = orig })
	return mock
}

func TestSpinnerObserverLifecycle(t *testing.T) {
	mock := withMockSpinner(t)

	obs := NewSpinnerObserver(3, io.Discard)
	if !mock.started {
		t.Error("spinner should start when the observer is created")
	}
	if got := mock.Suffix(); !strings.Contains(got, "0/3") {
		t.Errorf("initial suffix = %q, want 0/3 count", got)
	}

	obs.OnStart("Physics Expert")
	obs.OnStart("Chemistry Expert")
	if got := mock.Suffix(); !strings.Contains(got, "2 in flight") {
		t.Errorf("suffix = %q, want 2 in flight", got)
	}

	obs.OnSuccess("Physics Expert", 10*time.Millisecond)
	if got := mock.Suffix(); !strings.Contains(got, "1/3") {
		t.Errorf("suffix = %q, want 1/3 answered", got)
	}

	obs.OnFailure("Chemistry Expert", 5*time.Millisecond, io.ErrUnexpectedEOF)
	if got := mock.Suffix(); !strings.Contains(got, "2/3") {
		t.Errorf("suffix = %q, want 2/3 answered", got)
	}

	obs.Stop()
	if !mock.stopped {
		t.Error("spinner should stop when the observer stops")
	}
}

func TestSpinnerObserverConcurrentUpdates(t *testing.T) {
	mock := withMockSpinner(t)

	const n = 32
	obs := NewSpinnerObserver(n, io.Discard)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			obs.OnStart("expert")
			obs.OnSuccess("expert", time.Millisecond)
		}()
	}
	wg.Wait()
	obs.Stop()

	want := "32/32"
	if got := mock.Suffix(); !strings.Contains(got, want) {
		t.Errorf("final suffix = %q, want %q", got, want)
	}
}
