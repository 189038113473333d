package tool

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fusbox/chatarbor-alternative/internal/domain/llm"
	"github.com/fusbox/chatarbor-alternative/internal/infrastructure/metrics"
	"github.com/fusbox/chatarbor-alternative/internal/infrastructure/observability"
)

// Bridge executes model-requested tool calls against the external capability
// provider. Calls run concurrently and independently: one failure never
// prevents the others' results from being returned.
type Bridge struct {
	runner      Runner
	callTimeout time.Duration
	log         zerolog.Logger
}

// NewBridge constructs a tool execution bridge.
func NewBridge(runner Runner, callTimeout time.Duration, log zerolog.Logger) *Bridge {
	return &Bridge{
		runner:      runner,
		callTimeout: callTimeout,
		log:         log.With().Str("component", "tool-bridge").Logger(),
	}
}

// Definitions returns the tool declarations to advertise to the model.
func (b *Bridge) Definitions(ctx context.Context) ([]llm.ToolDefinition, error) {
	return b.runner.Definitions(ctx)
}

// ExecuteAll resolves every request concurrently and returns results in input
// order; downstream correlation when building tool-result messages is by
// position and call id. Argument parse failures stay local to the call: the
// runner receives empty arguments and the result carries an error descriptor.
func (b *Bridge) ExecuteAll(ctx context.Context, requests []Request) []Call {
	calls := make([]Call, len(requests))

	var wg sync.WaitGroup
	for i, req := range requests {
		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()
			calls[i] = b.execute(ctx, req)
		}(i, req)
	}
	wg.Wait()

	return calls
}

func (b *Bridge) execute(ctx context.Context, req Request) Call {
	call := Call{ID: req.ID, Name: req.Name, Arguments: map[string]interface{}{}}

	args, err := ParseArguments(req.RawArguments)
	if err != nil {
		b.log.Warn().Err(err).Str("tool", req.Name).Msg("tool arguments did not parse")
		metrics.ToolCallsTotal.WithLabelValues(req.Name, "failed").Inc()
		call.Result = failure(req.Name, fmt.Errorf("invalid arguments: %w", err))
		return call
	}
	call.Arguments = args

	callCtx := ctx
	if b.callTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, b.callTimeout)
		defer cancel()
	}

	callCtx, span := observability.StartToolSpan(callCtx, req.Name)
	defer span.End()

	start := time.Now()
	result, execErr := b.runner.Execute(callCtx, req.Name, call.Arguments)
	metrics.ToolDuration.WithLabelValues(req.Name).Observe(time.Since(start).Seconds())

	if execErr != nil {
		b.log.Error().Err(execErr).Str("tool", req.Name).Msg("tool execution failed")
		metrics.ToolCallsTotal.WithLabelValues(req.Name, "failed").Inc()
		call.Result = failure(req.Name, execErr)
		return call
	}

	metrics.ToolCallsTotal.WithLabelValues(req.Name, "completed").Inc()
	call.Result = result
	return call
}

func failure(name string, err error) map[string]interface{} {
	return map[string]interface{}{
		"error": fmt.Sprintf("Failed to execute %s: %s", name, err.Error()),
	}
}
