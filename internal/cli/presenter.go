package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/expertpanel/internal/config"
	"github.com/agbru/expertpanel/internal/expert"
	"github.com/agbru/expertpanel/internal/format"
	"github.com/agbru/expertpanel/internal/orchestration"
	"github.com/agbru/expertpanel/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the query, the model, the endpoint, and the batch deadline.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Query: %s%s%s\n", ui.ColorPrimary(), cfg.Query, ui.ColorReset())
	fmt.Fprintf(out, "Model: %s%s%s at %s%s%s\n",
		ui.ColorSecondary(), cfg.Model, ui.ColorReset(),
		ui.ColorSecondary(), cfg.BaseURL, ui.ColorReset())
	if cfg.BatchTimeout > 0 {
		fmt.Fprintf(out, "Deadline: %s%s%s per batch, %s%s%s per request.\n",
			ui.ColorYellow(), cfg.BatchTimeout, ui.ColorReset(),
			ui.ColorYellow(), cfg.RequestTimeout, ui.ColorReset())
	} else {
		fmt.Fprintf(out, "Deadline: none per batch, %s%s%s per request.\n",
			ui.ColorYellow(), cfg.RequestTimeout, ui.ColorReset())
	}
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorSecondary(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorSecondary(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode displays the fan-out mode (panel size and concurrency).
//
// Parameters:
//   - panel: The expert descriptors about to be invoked.
//   - maxConcurrent: The concurrency bound (0 means unbounded).
//   - out: The writer for standard output.
func PrintExecutionMode(panel []expert.Descriptor, maxConcurrent int, out io.Writer) {
	var modeDesc string
	switch {
	case len(panel) == 1:
		modeDesc = fmt.Sprintf("Single consultation with %s%s%s",
			ui.ColorGreen(), panel[0].Name, ui.ColorReset())
	case maxConcurrent > 0:
		modeDesc = fmt.Sprintf("Concurrent consultation of %s%d%s experts (at most %s%d%s in flight)",
			ui.ColorGreen(), len(panel), ui.ColorReset(),
			ui.ColorYellow(), maxConcurrent, ui.ColorReset())
	default:
		modeDesc = fmt.Sprintf("Concurrent consultation of %s%d%s experts",
			ui.ColorGreen(), len(panel), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Consulting the Panel ---\n")
}

// PresentResponses displays each expert's answer in input order. Failed
// invocations show their annotated error output in red.
//
// Parameters:
//   - results: The batch results, one per expert, in input order.
//   - out: The writer for standard output.
func PresentResponses(results []orchestration.InvocationResult, out io.Writer) {
	for _, res := range results {
		fmt.Fprintf(out, "\n%s%s=== %s ===%s\n",
			ui.ColorBold(), ui.ColorBlue(), res.Name, ui.ColorReset())
		if res.Succeeded() {
			fmt.Fprintf(out, "%s\n", strings.TrimRight(res.Output, "\n"))
		} else {
			fmt.Fprintf(out, "%s%s%s\n", ui.ColorRed(), res.Output, ui.ColorReset())
		}
	}
}

// PresentSummaryTable displays the batch summary table with expert names,
// durations, and status in a formatted tabular layout.
// Uses manual padding to correctly handle ANSI color codes.
func PresentSummaryTable(summary orchestration.Summary, out io.Writer) {
	fmt.Fprintf(out, "\n--- Panel Summary ---\n")

	// Find the maximum name width for proper alignment
	maxNameLen := 6     // "Expert" header length
	maxDurationLen := 8 // "Duration" header length
	for _, res := range summary.Results {
		if len(res.Name) > maxNameLen {
			maxNameLen = len(res.Name)
		}
		duration := format.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		if len(duration) > maxDurationLen {
			maxDurationLen = len(duration)
		}
	}

	// Print header with proper padding
	fmt.Fprintf(out, "%sExpert%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-6),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-8),
		ui.ColorUnderline(), ui.ColorReset())

	// Print each result row
	for _, res := range summary.Results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		duration := format.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			status)
	}

	fmt.Fprintf(out, "\nTotal elapsed (slowest expert): %s%s%s. %d/%d succeeded.\n",
		ui.ColorYellow(), format.FormatExecutionDuration(summary.TotalElapsed), ui.ColorReset(),
		summary.SuccessCount, len(summary.Results))
}

// padRight returns a string of spaces with the given length.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}
