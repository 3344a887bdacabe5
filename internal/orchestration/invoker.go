package orchestration

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/agbru/expertpanel/internal/errors"
	"github.com/agbru/expertpanel/internal/expert"
	"github.com/agbru/expertpanel/internal/llm"
)

// Invoke performs one timed completion request for a single descriptor and
// converts every failure mode into a populated InvocationResult. It never
// returns an error and never lets a panic escape: this is the isolation
// contract that keeps one expert's failure from aborting its siblings.
//
// The start timestamp is recorded immediately before the request is issued;
// the duration covers the request only, not observer notifications.
//
// Parameters:
//   - ctx: The context bounding the single request.
//   - client: The shared completion client.
//   - desc: The responder descriptor (instructions + name).
//   - query: The user query, sent as the user turn.
//   - obs: The lifecycle notification sink.
//
// Returns:
//   - InvocationResult: The populated outcome, success or failure.
func Invoke(ctx context.Context, client llm.Client, desc expert.Descriptor, query string, obs Observer) InvocationResult {
	if obs == nil {
		obs = NullObserver{}
	}

	notify(func() { obs.OnStart(desc.Name) })

	start := time.Now()
	output, err := complete(ctx, client, desc.Instructions, query)
	duration := time.Since(start)

	result := InvocationResult{Name: desc.Name, Duration: duration}

	if err != nil {
		result.Err = apperrors.InvocationError{Expert: desc.Name, Cause: err}
		result.Output = fmt.Sprintf("[error: %v]", err)
		notify(func() { obs.OnFailure(desc.Name, duration, result.Err) })
		return result
	}

	if strings.TrimSpace(output) == "" {
		output = NoContentPlaceholder
	}
	result.Output = output
	notify(func() { obs.OnSuccess(desc.Name, duration) })
	return result
}

// complete issues the single request, converting a panicking client into an
// error so the isolation contract holds even against misbehaving backends.
func complete(ctx context.Context, client llm.Client, instructions, query string) (output string, err error) {
	defer func() {
		if r := recover(); r != nil {
			output = ""
			err = fmt.Errorf("completion client panicked: %v", r)
		}
	}()
	return client.Complete(ctx, instructions, query)
}

// notify runs an observer callback, swallowing panics. Notification sinks
// are fire-and-forget: their failures must not affect the result.
func notify(f func()) {
	defer func() { _ = recover() }()
	f()
}
