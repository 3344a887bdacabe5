// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Print* and Present* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [PrintExecutionConfig], [PresentResponses], [PresentSummaryTable].
//
//   - Render* functions write machine-readable output to an [io.Writer].
//     Examples: [RenderJSON].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteTranscriptToFile].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/expertpanel/internal/orchestration"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the transcript (empty for no file output).
	OutputFile string
	// Quiet mode suppresses verbose output.
	Quiet bool
	// JSON selects machine-readable output.
	JSON bool
}

// batchDocument is the JSON shape emitted by RenderJSON.
type batchDocument struct {
	Query          string                           `json:"query"`
	Model          string                           `json:"model"`
	Results        []orchestration.InvocationResult `json:"results"`
	TotalElapsedMS int64                            `json:"total_elapsed_ms"`
	SuccessCount   int                              `json:"success_count"`
}

// RenderJSON writes the batch outcome as an indented JSON document.
//
// Parameters:
//   - summary: The aggregated batch summary.
//   - query: The question that was submitted to the panel.
//   - model: The model identifier used for the batch.
//   - out: The output writer.
//
// Returns:
//   - error: An error if encoding fails.
func RenderJSON(summary orchestration.Summary, query, model string, out io.Writer) error {
	doc := batchDocument{
		Query:          query,
		Model:          model,
		Results:        summary.Results,
		TotalElapsedMS: summary.TotalElapsed.Milliseconds(),
		SuccessCount:   summary.SuccessCount,
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteTranscriptToFile writes the batch transcript to a file.
//
// Parameters:
//   - summary: The aggregated batch summary.
//   - query: The question that was submitted to the panel.
//   - model: The model identifier used for the batch.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteTranscriptToFile(summary orchestration.Summary, query, model string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	// Write header
	fmt.Fprintf(file, "# Expert Panel Transcript\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Model: %s\n", model)
	fmt.Fprintf(file, "# Experts: %d\n", len(summary.Results))
	fmt.Fprintf(file, "# Succeeded: %d\n", summary.SuccessCount)
	fmt.Fprintf(file, "# Total elapsed: %s\n", summary.TotalElapsed)
	fmt.Fprintf(file, "\nQuery: %s\n", query)

	// Write each answer in input order
	for _, res := range summary.Results {
		fmt.Fprintf(file, "\n=== %s (%s) ===\n", res.Name, res.Duration)
		fmt.Fprintf(file, "%s\n", res.Output)
	}

	return nil
}
