package format

import (
	"testing"
	"time"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"sub-millisecond", 250 * time.Microsecond, "250µs"},
		{"sub-second", 150 * time.Millisecond, "150ms"},
		{"seconds", 1400 * time.Millisecond, "1.4s"},
		{"zero", 0, "0µs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatExecutionDuration(tt.d); got != tt.want {
				t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}
