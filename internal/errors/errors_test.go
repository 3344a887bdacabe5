package apperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()

	err := NewConfigError("invalid panel file %q", "panel.yaml")
	if err.Error() != `invalid panel file "panel.yaml"` {
		t.Errorf("unexpected message: %q", err.Error())
	}

	var cfgErr ConfigError
	if !errors.As(err, &cfgErr) {
		t.Error("errors.As should match ConfigError")
	}
}

func TestInvocationError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := InvocationError{Expert: "Physics Expert", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if !strings.Contains(err.Error(), "Physics Expert") {
		t.Errorf("message should name the expert, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("message should contain the cause, got %q", err.Error())
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()

	err := TimeoutError{Operation: "batch", Limit: 5 * time.Second}
	want := `operation "batch" timed out after 5s`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		if got := WrapError(nil, "context"); got != nil {
			t.Errorf("WrapError(nil) = %v, want nil", got)
		}
	})

	t.Run("wrapped error is unwrappable", func(t *testing.T) {
		cause := errors.New("boom")
		wrapped := WrapError(cause, "running batch %s", "abc")
		if !errors.Is(wrapped, cause) {
			t.Error("errors.Is should find the cause")
		}
		if !strings.Contains(wrapped.Error(), "running batch abc") {
			t.Errorf("unexpected message: %q", wrapped.Error())
		}
	})
}

func TestIsContextError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"canceled", context.Canceled, true},
		{"deadline", context.DeadlineExceeded, true},
		{"wrapped canceled", fmt.Errorf("outer: %w", context.Canceled), true},
		{"other", errors.New("other"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsContextError(tt.err); got != tt.want {
				t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestHandleBatchError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"nil", nil, ExitSuccess},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"deadline", context.DeadlineExceeded, ExitErrorTimeout},
		{"config", NewConfigError("bad flag"), ExitErrorConfig},
		{"validation", ValidationError{Field: "name", Message: "empty"}, ExitErrorConfig},
		{"generic", errors.New("boom"), ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if got := HandleBatchError(tt.err, &buf); got != tt.wantCode {
				t.Errorf("HandleBatchError(%v) = %d, want %d", tt.err, got, tt.wantCode)
			}
			if tt.err != nil && buf.Len() == 0 {
				t.Error("expected a diagnostic message for non-nil error")
			}
		})
	}
}
