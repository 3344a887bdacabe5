package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/expertpanel/internal/orchestration"
)

// SpinnerRefreshRate defines the refresh frequency of the progress spinner.
const SpinnerRefreshRate = 200 * time.Millisecond

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows the progress observer to be decoupled from a specific spinner
// implementation, facilitating easier testing. It defines the essential
// controls for a spinner: starting, stopping, and updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface. This adapter allows the `spinner` library to be used
// within the application's CLI framework.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
//
// Parameters:
//   - suffix: The string to display.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// SpinnerObserver reports batch progress on the terminal while experts are
// being consulted. It implements orchestration.Observer and is safe for
// concurrent use.
type SpinnerObserver struct {
	mu      sync.Mutex
	sp      Spinner
	total   int
	started int
	settled int
}

// Verify interface compliance.
var _ orchestration.Observer = (*SpinnerObserver)(nil)

// NewSpinnerObserver creates a SpinnerObserver for a panel of the given size,
// writing the animation to out.
//
// Parameters:
//   - total: The number of experts on the panel.
//   - out: The writer for the spinner animation.
//
// Returns:
//   - *SpinnerObserver: A started observer; call Stop when the batch finishes.
func NewSpinnerObserver(total int, out io.Writer) *SpinnerObserver {
	o := &SpinnerObserver{
		sp:    newSpinner(spinner.WithWriter(out)),
		total: total,
	}
	o.sp.UpdateSuffix(fmt.Sprintf(" 0/%d experts answered", total))
	o.sp.Start()
	return o
}

// OnStart records that an expert invocation has begun.
func (o *SpinnerObserver) OnStart(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started++
	o.refreshLocked()
}

// OnSuccess records a successful expert answer.
func (o *SpinnerObserver) OnSuccess(name string, duration time.Duration) {
	o.settle()
}

// OnFailure records a failed expert invocation.
func (o *SpinnerObserver) OnFailure(name string, duration time.Duration, err error) {
	o.settle()
}

// Stop halts the spinner animation. Must be called after the batch joins so
// the final output does not race the animation.
func (o *SpinnerObserver) Stop() {
	o.sp.Stop()
}

func (o *SpinnerObserver) settle() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.settled++
	o.refreshLocked()
}

func (o *SpinnerObserver) refreshLocked() {
	o.sp.UpdateSuffix(fmt.Sprintf(" %d/%d experts answered (%d in flight)",
		o.settled, o.total, o.started-o.settled))
}
