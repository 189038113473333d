package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fusbox/chatarbor-alternative/internal/domain/conversation"
	"github.com/fusbox/chatarbor-alternative/internal/domain/knowledge"
	"github.com/fusbox/chatarbor-alternative/internal/domain/prompt"
	"github.com/fusbox/chatarbor-alternative/internal/domain/retrieval"
	"github.com/fusbox/chatarbor-alternative/internal/infrastructure/metrics"
	"github.com/fusbox/chatarbor-alternative/internal/infrastructure/observability"
)

// DocumentStore is the read-only view of the knowledge base consumed on
// every turn.
type DocumentStore interface {
	List(ctx context.Context) ([]knowledge.Document, error)
}

// PromptSource resolves the effective system instruction.
type PromptSource interface {
	SystemPrompt(ctx context.Context) string
}

// Options tune the turn pipeline.
type Options struct {
	DefaultModel  string
	HistoryWindow int
	RetrievalTopK int
}

// Service is the turn orchestrator: it drives one conversational turn from
// user input through retrieval, prompt assembly, model invocation, and
// session reconciliation.
type Service struct {
	sessions  conversation.Repository
	locks     *conversation.Registry
	documents DocumentStore
	prompts   PromptSource
	invoker   *Invoker
	opts      Options
	log       zerolog.Logger
}

// NewService constructs the chat service.
func NewService(
	sessions conversation.Repository,
	locks *conversation.Registry,
	documents DocumentStore,
	prompts PromptSource,
	invoker *Invoker,
	opts Options,
	log zerolog.Logger,
) *Service {
	return &Service{
		sessions:  sessions,
		locks:     locks,
		documents: documents,
		prompts:   prompts,
		invoker:   invoker,
		opts:      opts,
		log:       log.With().Str("component", "chat").Logger(),
	}
}

// TurnParams describes one incoming turn request.
type TurnParams struct {
	SessionID string
	Message   string
	Model     string
	// Sink selects streaming delivery when set.
	Sink ChunkSink
}

// TurnResult is the outcome of a completed turn. For streaming turns the
// message text is the reconstruction of everything forwarded to the sink;
// it is reconciled into session history once the stream has completed.
type TurnResult struct {
	Message conversation.Message `json:"message"`
	Context string               `json:"context,omitempty"`
	State   *conversation.State  `json:"state"`
}

// RunTurn executes one conversational turn end-to-end. A second call for the
// same session while a turn is in flight returns ErrSessionBusy; history
// appends of concurrent sessions never interleave.
func (s *Service) RunTurn(ctx context.Context, params TurnParams) (*TurnResult, error) {
	text := strings.TrimSpace(params.Message)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	release, ok := s.locks.TryAcquire(params.SessionID)
	if !ok {
		metrics.SessionBusyTotal.Inc()
		return nil, ErrSessionBusy
	}
	defer release()

	mode := "complete"
	if params.Sink != nil {
		mode = "stream"
	}
	start := time.Now()

	ctx, span := observability.StartTurnSpan(ctx, params.SessionID, mode)
	defer span.End()

	state, err := s.loadOrCreate(ctx, params.SessionID)
	if err != nil {
		return nil, err
	}
	if params.Model != "" && params.Model != state.Model {
		state.Model = params.Model
	}

	// The prompt window is built from history before this turn; the new user
	// message is always appended as the final prompt entry.
	history := append([]conversation.Message(nil), state.Messages...)

	state.Append(conversation.NewMessage(conversation.RoleUser, text))
	state.IsProcessing = true
	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	// A failure below must never leave the processing flag stuck.
	defer func() {
		if state.IsProcessing {
			state.IsProcessing = false
			if err := s.sessions.Save(context.WithoutCancel(ctx), state); err != nil {
				s.log.Error().Err(err).Str("session_id", state.ID).Msg("resetting processing flag failed")
			}
		}
	}()

	docs, err := s.documents.List(ctx)
	if err != nil {
		return nil, s.failTurn(ctx, state, params.Sink, "", mode, start, fmt.Errorf("list documents: %w", err))
	}
	selected := retrieval.Score(text, docs, s.opts.RetrievalTopK)
	metrics.RetrievedDocuments.Observe(float64(len(selected)))
	contextBlock := prompt.RenderContext(selected)

	messages := prompt.Assemble(prompt.Params{
		SystemInstruction: s.prompts.SystemPrompt(ctx),
		RetrievedDocs:     selected,
		History:           history,
		UserMessage:       text,
		HistoryWindow:     s.opts.HistoryWindow,
	})

	result, err := s.invoker.Invoke(ctx, InvokeParams{
		Model:    state.Model,
		Messages: messages,
		Tools:    s.invoker.Definitions(ctx),
		Context:  contextBlock,
		Sink:     params.Sink,
	})
	if err != nil {
		return nil, s.failTurn(ctx, state, params.Sink, contextBlock, mode, start, err)
	}

	assistant := conversation.NewMessage(conversation.RoleAssistant, result.Text)
	assistant.ToolCalls = result.ToolCalls
	state.Append(assistant)
	state.IsProcessing = false
	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	metrics.TurnsTotal.WithLabelValues(mode, "completed").Inc()
	metrics.TurnDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())

	return &TurnResult{Message: assistant, Context: contextBlock, State: state}, nil
}

// failTurn converts any pipeline failure into the generic user-facing error:
// a fixed apologetic assistant message is appended (and, in streaming mode,
// yielded ahead of the closing sentinel), the processing flag is reset, and
// the internal error is logged but never surfaced verbatim.
func (s *Service) failTurn(ctx context.Context, state *conversation.State, sink ChunkSink, contextBlock, mode string, start time.Time, cause error) error {
	s.log.Error().Err(cause).Str("session_id", state.ID).Msg("turn failed")

	errMsg := conversation.NewMessage(conversation.RoleAssistant, ProcessingErrorText)
	errMsg.IsError = true
	state.Append(errMsg)
	state.IsProcessing = false
	if err := s.sessions.Save(context.WithoutCancel(ctx), state); err != nil {
		s.log.Error().Err(err).Str("session_id", state.ID).Msg("persisting failed turn")
	}

	if sink != nil {
		if err := sink(ProcessingErrorText + "\n" + ContextOpenMarker + contextBlock + ContextCloseMarker); err != nil {
			s.log.Warn().Err(err).Msg("writing failure payload to stream")
		}
	}

	metrics.TurnsTotal.WithLabelValues(mode, "failed").Inc()
	metrics.TurnDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())

	return ErrTurnFailed
}

// GetSession loads one session, creating it on first access.
func (s *Service) GetSession(ctx context.Context, id string) (*conversation.State, error) {
	return s.loadOrCreate(ctx, id)
}

// ListSessions returns all known sessions.
func (s *Service) ListSessions(ctx context.Context) ([]*conversation.State, error) {
	return s.sessions.List(ctx)
}

// ClearMessages resets a session's history wholesale. A session mid-turn
// cannot be cleared.
func (s *Service) ClearMessages(ctx context.Context, id string) (*conversation.State, error) {
	release, ok := s.locks.TryAcquire(id)
	if !ok {
		return nil, ErrSessionBusy
	}
	defer release()

	state, err := s.loadOrCreate(ctx, id)
	if err != nil {
		return nil, err
	}
	state.Clear()
	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return state, nil
}

// UpdateModel switches the session's model for subsequent turns.
func (s *Service) UpdateModel(ctx context.Context, id, model string) (*conversation.State, error) {
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("model is required")
	}

	release, ok := s.locks.TryAcquire(id)
	if !ok {
		return nil, ErrSessionBusy
	}
	defer release()

	state, err := s.loadOrCreate(ctx, id)
	if err != nil {
		return nil, err
	}
	state.Model = model
	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return state, nil
}

func (s *Service) loadOrCreate(ctx context.Context, id string) (*conversation.State, error) {
	state, err := s.sessions.Get(ctx, id)
	if errors.Is(err, conversation.ErrNotFound) {
		return conversation.NewState(id, s.opts.DefaultModel), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return state, nil
}
