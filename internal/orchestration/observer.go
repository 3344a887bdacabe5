package orchestration

import "time"

// Observer receives fire-and-forget invocation lifecycle notifications.
// Implementations must be safe to call from multiple goroutines
// simultaneously; no ordering between calls for different experts is
// guaranteed. Observer failures never affect invocation results: the invoker
// isolates every callback.
type Observer interface {
	// OnStart is invoked immediately before the completion request is issued.
	OnStart(name string)
	// OnSuccess is invoked after a successful response, with the measured
	// request duration.
	OnSuccess(name string, duration time.Duration)
	// OnFailure is invoked after a failed request, with the measured
	// duration and the cause.
	OnFailure(name string, duration time.Duration, err error)
}

// NullObserver is a no-op Observer for quiet mode and testing.
type NullObserver struct{}

func (NullObserver) OnStart(string)                         {}
func (NullObserver) OnSuccess(string, time.Duration)        {}
func (NullObserver) OnFailure(string, time.Duration, error) {}

// MultiObserver fans every notification out to each member in order.
// It is safe for concurrent use iff every member is.
type MultiObserver []Observer

// Verify interface compliance.
var (
	_ Observer = NullObserver{}
	_ Observer = MultiObserver{}
)

func (m MultiObserver) OnStart(name string) {
	for _, o := range m {
		o.OnStart(name)
	}
}

func (m MultiObserver) OnSuccess(name string, duration time.Duration) {
	for _, o := range m {
		o.OnSuccess(name, duration)
	}
}

func (m MultiObserver) OnFailure(name string, duration time.Duration, err error) {
	for _, o := range m {
		o.OnFailure(name, duration, err)
	}
}
