package chat

import "errors"

// Sentinel markers delimiting the out-of-band context payload appended after
// the visible answer on every streamed turn. A stream consumer splits on the
// first occurrence of ContextOpenMarker to separate answer text from context
// metadata.
const (
	ContextOpenMarker  = "<CONTEXT>"
	ContextCloseMarker = "</CONTEXT>"
)

// ProcessingErrorText is the fixed assistant-visible text for a failed turn.
// Internal error detail is logged, never sent to the client.
const ProcessingErrorText = "I'm sorry, I encountered an error while processing your request. Please try again."

// emptyAnswerText substitutes for a completion that produced no text.
const emptyAnswerText = "I apologize, but I encountered an issue processing your request."

var (
	// ErrEmptyMessage rejects blank input before any state is mutated.
	ErrEmptyMessage = errors.New("message is required")

	// ErrSessionBusy signals that a turn is already in flight for the
	// session. Overlapping requests are rejected, not queued.
	ErrSessionBusy = errors.New("session is already processing a turn")

	// ErrTurnFailed is the generic user-facing failure for an aborted turn.
	ErrTurnFailed = errors.New("turn processing failed")
)

// ChunkSink receives streamed answer text in strict arrival order. The
// context sentinel payload is always the last write.
type ChunkSink func(text string) error
