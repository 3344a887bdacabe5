package app

import (
	"context"
	"fmt"
	"io"

	"github.com/agbru/expertpanel/internal/cli"
	apperrors "github.com/agbru/expertpanel/internal/errors"
	"github.com/agbru/expertpanel/internal/expert"
	"github.com/agbru/expertpanel/internal/logging"
	"github.com/agbru/expertpanel/internal/metrics"
	"github.com/agbru/expertpanel/internal/orchestration"
)

// runAsk orchestrates the execution of the CLI panel consultation.
func (a *Application) runAsk(ctx context.Context, panel []expert.Descriptor, out io.Writer) int {
	// Skip verbose output in quiet and JSON modes
	showBanners := !a.Config.Quiet && !a.Config.JSON
	if showBanners {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(panel, a.Config.MaxConcurrent, out)
	}

	// Choose observers based on output mode
	observers := []orchestration.Observer{metrics.NewObserver(a.Metrics)}
	var spinnerObs *cli.SpinnerObserver
	if showBanners {
		spinnerObs = cli.NewSpinnerObserver(len(panel), out)
		observers = append(observers, spinnerObs)
	}

	a.Metrics.BatchStarted()
	results, err := orchestration.RunBatch(ctx, a.Client, panel, a.Config.Query, orchestration.BatchOptions{
		MaxConcurrent: a.Config.MaxConcurrent,
		Observer:      orchestration.MultiObserver(observers),
		Logger:        a.Logger,
	})
	if spinnerObs != nil {
		spinnerObs.Stop()
	}
	if err != nil {
		return apperrors.HandleBatchError(err, a.ErrWriter)
	}

	summary := orchestration.Summarize(results)
	a.Logger.Debug("batch summarized",
		logging.Int("experts", len(summary.Results)),
		logging.Int("succeeded", summary.SuccessCount),
		logging.Dur("total_elapsed", summary.TotalElapsed))

	return a.presentSummary(summary, out)
}

// presentSummary renders the batch outcome in the configured format and maps
// it to an exit code.
func (a *Application) presentSummary(summary orchestration.Summary, out io.Writer) int {
	if a.Config.JSON {
		if err := cli.RenderJSON(summary, a.Config.Query, a.Config.Model, out); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error encoding results: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
	} else {
		cli.PresentResponses(summary.Results, out)
		if !a.Config.Quiet {
			cli.PresentSummaryTable(summary, out)
		}
	}

	if a.Config.OutputFile != "" {
		outputCfg := cli.OutputConfig{
			OutputFile: a.Config.OutputFile,
			Quiet:      a.Config.Quiet,
			JSON:       a.Config.JSON,
		}
		if err := cli.WriteTranscriptToFile(summary, a.Config.Query, a.Config.Model, outputCfg); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving transcript: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		if !a.Config.Quiet && !a.Config.JSON {
			fmt.Fprintf(out, "\nTranscript saved to: %s\n", a.Config.OutputFile)
		}
	}

	if summary.SuccessCount == 0 {
		return apperrors.ExitErrorAllFailed
	}
	return apperrors.ExitSuccess
}
