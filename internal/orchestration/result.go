package orchestration

import (
	"encoding/json"
	"time"
)

// NoContentPlaceholder is substituted for the output text when the
// completion service answers successfully but returns no content.
const NoContentPlaceholder = "[no response content]"

// InvocationResult encapsulates the outcome of a single expert invocation.
// Exactly one instance is produced per descriptor per batch, regardless of
// success or failure: a failed invocation populates Err and an
// error-annotated Output instead of being dropped.
type InvocationResult struct {
	// Name is the responder name from the originating descriptor.
	Name string
	// Output is the generated text, a placeholder when a success carried no
	// content, or an error-annotated string on failure.
	Output string
	// Duration is the wall-clock time of the single completion request.
	// It is always non-negative.
	Duration time.Duration
	// Err is non-nil iff the invocation failed.
	Err error
}

// Succeeded reports whether the invocation completed without error.
func (r InvocationResult) Succeeded() bool { return r.Err == nil }

// ErrorMessage returns a description of the failure, or the empty string on
// success.
func (r InvocationResult) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// MarshalJSON renders the result for machine consumers, exposing the
// succeeded/error view of the Err field.
func (r InvocationResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name       string `json:"name"`
		Output     string `json:"output"`
		Succeeded  bool   `json:"succeeded"`
		Error      string `json:"error,omitempty"`
		DurationMS int64  `json:"duration_ms"`
	}{
		Name:       r.Name,
		Output:     r.Output,
		Succeeded:  r.Succeeded(),
		Error:      r.ErrorMessage(),
		DurationMS: r.Duration.Milliseconds(),
	})
}

// Summary is the aggregate view of a completed batch.
type Summary struct {
	// Results holds one entry per descriptor, in input order.
	Results []InvocationResult
	// TotalElapsed reflects the parallel cost of the batch: the maximum
	// individual duration, never the sum.
	TotalElapsed time.Duration
	// SuccessCount is the number of results with no error.
	SuccessCount int
}

// Summarize computes the batch summary. It is a pure function: the result
// slice is neither copied nor mutated.
func Summarize(results []InvocationResult) Summary {
	s := Summary{Results: results}
	for _, r := range results {
		if r.Duration > s.TotalElapsed {
			s.TotalElapsed = r.Duration
		}
		if r.Succeeded() {
			s.SuccessCount++
		}
	}
	return s
}
