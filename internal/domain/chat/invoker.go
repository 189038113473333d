package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fusbox/chatarbor-alternative/internal/domain/conversation"
	"github.com/fusbox/chatarbor-alternative/internal/domain/llm"
	"github.com/fusbox/chatarbor-alternative/internal/domain/tool"
	"github.com/fusbox/chatarbor-alternative/internal/infrastructure/metrics"
)

// Invoker wraps the model backend for one turn. It drives the streaming
// state machine: forward text while accumulating tool-call fragments, freeze
// and execute the calls on a tool_calls finish signal, fold the results into
// a follow-up invocation, and close the stream with the context sentinel.
type Invoker struct {
	provider  llm.Provider
	bridge    *tool.Bridge
	maxTokens int
	log       zerolog.Logger
}

// NewInvoker constructs the model invocation adapter. The provider instance
// is injected once at construction; there is no hidden client cache.
func NewInvoker(provider llm.Provider, bridge *tool.Bridge, maxTokens int, log zerolog.Logger) *Invoker {
	return &Invoker{
		provider:  provider,
		bridge:    bridge,
		maxTokens: maxTokens,
		log:       log.With().Str("component", "invoker").Logger(),
	}
}

// InvokeParams describes one model invocation.
type InvokeParams struct {
	Model    string
	Messages []llm.ChatMessage
	Tools    []llm.ToolDefinition
	// Context is the rendered retrieved-context block, delivered out-of-band
	// at the end of a streamed turn.
	Context string
	// Sink, when set, selects streaming mode.
	Sink ChunkSink
}

// InvokeResult carries the final answer text and any resolved tool calls.
type InvokeResult struct {
	Text      string
	ToolCalls []tool.Call
}

// Invoke runs one turn against the model, in single-shot or streaming mode.
func (inv *Invoker) Invoke(ctx context.Context, params InvokeParams) (*InvokeResult, error) {
	if params.Sink != nil {
		return inv.stream(ctx, params)
	}
	return inv.complete(ctx, params)
}

func (inv *Invoker) complete(ctx context.Context, params InvokeParams) (*InvokeResult, error) {
	resp, err := inv.provider.CreateChatCompletion(ctx, inv.request(params, params.Messages, params.Tools, false))
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("model returned no choices")
	}

	message := resp.Choices[0].Message
	if len(message.ToolCalls) == 0 {
		return &InvokeResult{Text: orFallback(message.Content)}, nil
	}

	requests := make([]tool.Request, 0, len(message.ToolCalls))
	for _, tc := range message.ToolCalls {
		requests = append(requests, tool.Request{ID: tc.ID, Name: tc.Function.Name, RawArguments: tc.Function.Arguments})
	}
	calls := inv.bridge.ExecuteAll(ctx, requests)

	followup := followupMessages(params.Messages, message.ToolCalls, calls)
	final, err := inv.provider.CreateChatCompletion(ctx, inv.request(params, followup, nil, false))
	if err != nil {
		return nil, fmt.Errorf("tool follow-up completion: %w", err)
	}
	if len(final.Choices) == 0 {
		return nil, errors.New("follow-up returned no choices")
	}

	return &InvokeResult{
		Text:      orFallback(final.Choices[0].Message.Content),
		ToolCalls: calls,
	}, nil
}

func (inv *Invoker) stream(ctx context.Context, params InvokeParams) (*InvokeResult, error) {
	var answer strings.Builder
	forward := func(text string) error {
		if text == "" {
			return nil
		}
		answer.WriteString(text)
		metrics.StreamChunksTotal.Inc()
		return params.Sink(text)
	}

	primary, err := inv.provider.CreateChatCompletionStream(ctx, inv.request(params, params.Messages, params.Tools, true))
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}

	acc := newCallAccumulator()
	toolsRequested, err := drainStream(primary, forward, acc)
	primary.Close()
	if err != nil {
		return nil, err
	}

	var calls []tool.Call
	if toolsRequested {
		requests, declared := acc.freeze()
		calls = inv.bridge.ExecuteAll(ctx, requests)

		followup := followupMessages(params.Messages, declared, calls)
		secondary, err := inv.provider.CreateChatCompletionStream(ctx, inv.request(params, followup, nil, true))
		if err != nil {
			return nil, fmt.Errorf("open follow-up stream: %w", err)
		}
		// Follow-up text chunks are forwarded identically to primary text;
		// a second round of tool calls is not honored.
		_, err = drainStream(secondary, forward, nil)
		secondary.Close()
		if err != nil {
			return nil, err
		}
	}

	if err := params.Sink("\n" + ContextOpenMarker + params.Context + ContextCloseMarker); err != nil {
		return nil, fmt.Errorf("write context payload: %w", err)
	}

	return &InvokeResult{Text: answer.String(), ToolCalls: calls}, nil
}

// drainStream forwards text chunks in arrival order and, when acc is
// non-nil, accumulates tool-call fragments. It returns true when the stream
// finished with a tool_calls signal.
func drainStream(stream llm.Stream, forward func(string) error, acc *callAccumulator) (bool, error) {
	for {
		delta, err := stream.Recv()
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("read stream: %w", err)
		}

		for _, choice := range delta.Choices {
			if acc != nil {
				for _, tc := range choice.Delta.ToolCalls {
					acc.apply(tc)
				}
			}
			if choice.Delta.Content != "" {
				if err := forward(choice.Delta.Content); err != nil {
					return false, fmt.Errorf("forward chunk: %w", err)
				}
			}
			if acc != nil && choice.FinishReason == llm.FinishReasonToolCalls {
				return true, nil
			}
		}
	}
}

func (inv *Invoker) request(params InvokeParams, messages []llm.ChatMessage, tools []llm.ToolDefinition, stream bool) llm.ChatCompletionRequest {
	req := llm.ChatCompletionRequest{
		Model:    params.Model,
		Messages: messages,
		Tools:    tools,
		Stream:   stream,
	}
	if len(tools) > 0 {
		req.ToolChoice = "auto"
	}
	if inv.maxTokens > 0 {
		maxTokens := inv.maxTokens
		req.MaxTokens = &maxTokens
	}
	return req
}

// followupMessages rebuilds the conversation for the post-tool pass: the
// original messages, an assistant turn declaring the tool calls, and one
// tool-result message per executed call correlated by call id.
func followupMessages(messages []llm.ChatMessage, declared []llm.ToolCall, calls []tool.Call) []llm.ChatMessage {
	followup := make([]llm.ChatMessage, 0, len(messages)+1+len(calls))
	followup = append(followup, messages...)
	followup = append(followup, llm.ChatMessage{
		Role:      conversation.RoleAssistant,
		Content:   "",
		ToolCalls: declared,
	})
	for i, call := range calls {
		payload, err := json.Marshal(call.Result)
		if err != nil {
			payload = []byte(`{"error":"unserializable tool result"}`)
		}
		callID := call.ID
		if callID == "" && i < len(declared) {
			callID = declared[i].ID
		}
		followup = append(followup, llm.ChatMessage{
			Role:       conversation.RoleTool,
			Content:    string(payload),
			ToolCallID: callID,
		})
	}
	return followup
}

func orFallback(text string) string {
	if strings.TrimSpace(text) == "" {
		return emptyAnswerText
	}
	return text
}

// callAccumulator rebuilds tool calls from streamed fragments, keyed by the
// call index carried on each delta. Argument fragments are concatenated in
// arrival order and parsed only after the table is frozen.
type callAccumulator struct {
	entries map[int]*callEntry
}

type callEntry struct {
	id   string
	name string
	args strings.Builder
}

func newCallAccumulator() *callAccumulator {
	return &callAccumulator{entries: make(map[int]*callEntry)}
}

func (a *callAccumulator) apply(tc llm.ToolCall) {
	entry, ok := a.entries[tc.Index]
	if !ok {
		entry = &callEntry{}
		a.entries[tc.Index] = entry
	}
	if tc.ID != "" {
		entry.id = tc.ID
	}
	if tc.Function.Name != "" {
		entry.name = tc.Function.Name
	}
	if tc.Function.Arguments != "" {
		entry.args.WriteString(tc.Function.Arguments)
	}
}

// freeze finalizes the table in index order, returning the executable
// requests plus the complete declarations for the follow-up assistant turn.
// Entries that never received a name are dropped.
func (a *callAccumulator) freeze() ([]tool.Request, []llm.ToolCall) {
	indices := make([]int, 0, len(a.entries))
	for idx := range a.entries {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	requests := make([]tool.Request, 0, len(indices))
	declared := make([]llm.ToolCall, 0, len(indices))
	for _, idx := range indices {
		entry := a.entries[idx]
		if entry.name == "" {
			continue
		}
		requests = append(requests, tool.Request{
			ID:           entry.id,
			Name:         entry.name,
			RawArguments: entry.args.String(),
		})
		declared = append(declared, llm.ToolCall{
			Index: idx,
			ID:    entry.id,
			Type:  "function",
			Function: llm.ToolFunction{
				Name:      entry.name,
				Arguments: entry.args.String(),
			},
		})
	}
	return requests, declared
}

// Definitions exposes the advertised tool set for the turn orchestrator.
func (inv *Invoker) Definitions(ctx context.Context) []llm.ToolDefinition {
	defs, err := inv.bridge.Definitions(ctx)
	if err != nil {
		inv.log.Warn().Err(err).Msg("listing tool definitions failed, continuing without tools")
		return nil
	}
	return defs
}
