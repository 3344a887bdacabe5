package orchestration

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	apperrors "github.com/agbru/expertpanel/internal/errors"
	"github.com/agbru/expertpanel/internal/expert"
	"github.com/agbru/expertpanel/internal/llm"
	"github.com/agbru/expertpanel/internal/logging"
)

// tracerName identifies this package's spans when a host wires a trace
// provider; without one, span creation is a no-op.
const tracerName = "github.com/agbru/expertpanel/internal/orchestration"

// BatchOptions configures a single RunBatch call.
type BatchOptions struct {
	// MaxConcurrent gates the number of simultaneously in-flight
	// invocations. Zero means unbounded: one goroutine per descriptor, all
	// launched at once, matching the "all experts simultaneously" model.
	// A positive value bounds fan-out with a weighted semaphore while
	// preserving the all-launched, all-joined contract.
	MaxConcurrent int
	// Observer receives invocation lifecycle notifications. Nil selects
	// NullObserver.
	Observer Observer
	// Logger receives batch-level structured logs. Nil selects NopLogger.
	Logger logging.Logger
}

// RunBatch fans the query out to every descriptor concurrently, waits for
// all invocations to settle, and returns their results in input order.
//
// Each descriptor yields exactly one InvocationResult at the position
// matching its position in descs, regardless of completion order. No
// individual failure short-circuits the batch: RunBatch returns an error
// only for violated preconditions (nil client, empty descriptor set).
//
// The call blocks until the slowest invocation settles. Callers that need a
// deadline pass it via ctx; on expiry, still-pending invocations settle as
// failures instead of blocking the join forever.
//
// Parameters:
//   - ctx: The context bounding the whole batch.
//   - client: The shared completion client (must be safe for concurrent use).
//   - descs: The ordered, non-empty descriptor sequence.
//   - query: The user query fanned out to every expert.
//   - opts: Batch options (concurrency cap, observer, logger).
//
// Returns:
//   - []InvocationResult: One result per descriptor, in input order.
//   - error: A precondition violation, or nil.
func RunBatch(ctx context.Context, client llm.Client, descs []expert.Descriptor, query string, opts BatchOptions) ([]InvocationResult, error) {
	if client == nil {
		return nil, apperrors.ValidationError{Field: "client", Message: "completion client must not be nil"}
	}
	if len(descs) == 0 {
		return nil, apperrors.ValidationError{Field: "descriptors", Message: "batch requires at least one descriptor"}
	}

	obs := opts.Observer
	if obs == nil {
		obs = NullObserver{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger{}
	}

	batchID := uuid.NewString()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "RunBatch",
		trace.WithAttributes(
			attribute.String("batch.id", batchID),
			attribute.Int("batch.experts", len(descs)),
			attribute.Int("batch.max_concurrent", opts.MaxConcurrent),
		))
	defer span.End()

	logger.Info("batch started",
		logging.String("batch", batchID),
		logging.Int("experts", len(descs)),
		logging.Int("max_concurrent", opts.MaxConcurrent))

	var sem *semaphore.Weighted
	if opts.MaxConcurrent > 0 {
		sem = semaphore.NewWeighted(int64(opts.MaxConcurrent))
	}

	g, gctx := errgroup.WithContext(ctx)
	results := make([]InvocationResult, len(descs))

	for i, d := range descs {
		idx, desc := i, d
		g.Go(func() error {
			if sem != nil {
				if err := sem.Acquire(gctx, 1); err == nil {
					defer sem.Release(1)
				}
				// An expired context falls through: the invoker settles
				// the slot as a failure instead of blocking the join.
			}
			results[idx] = invokeTraced(gctx, client, desc, query, obs)
			return nil
		})
	}

	// Join barrier: partial results are never returned.
	_ = g.Wait()

	summary := Summarize(results)
	logger.Info("batch finished",
		logging.String("batch", batchID),
		logging.Int("succeeded", summary.SuccessCount),
		logging.Int("failed", len(results)-summary.SuccessCount),
		logging.Dur("total_elapsed", summary.TotalElapsed))

	return results, nil
}

// invokeTraced wraps Invoke with a per-invocation span.
func invokeTraced(ctx context.Context, client llm.Client, desc expert.Descriptor, query string, obs Observer) InvocationResult {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "Invoke",
		trace.WithAttributes(attribute.String("expert.name", desc.Name)))
	defer span.End()

	result := Invoke(ctx, client, desc, query, obs)

	span.SetAttributes(
		attribute.Bool("invocation.succeeded", result.Succeeded()),
		attribute.Int64("invocation.duration_ms", result.Duration.Milliseconds()),
	)
	if result.Err != nil {
		span.RecordError(result.Err)
	}
	return result
}
