package conversation

import (
	"time"

	"github.com/google/uuid"

	"github.com/fusbox/chatarbor-alternative/internal/domain/tool"
)

// Message roles. RoleTool is only ever model-facing; persisted history holds
// user and assistant messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleTool      = "tool"
)

// Message is one entry in a session's history. Immutable once appended,
// except that a streaming assistant message is only appended after its full
// text has been reconstructed.
type Message struct {
	ID        string      `json:"id"`
	Role      string      `json:"role"`
	Content   string      `json:"content"`
	ToolCalls []tool.Call `json:"tool_calls,omitempty"`
	IsError   bool        `json:"is_error,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewMessage builds a message with a fresh id.
func NewMessage(role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

// State is the durable per-session record. Mutated only by the turn
// orchestrator's lifecycle events; never by two turns concurrently.
type State struct {
	ID           string    `json:"session_id"`
	Messages     []Message `json:"messages"`
	IsProcessing bool      `json:"is_processing"`
	Model        string    `json:"model"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewState initializes a session with empty history and the given model.
func NewState(id, model string) *State {
	now := time.Now().UTC()
	return &State{
		ID:        id,
		Messages:  []Message{},
		Model:     model,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Append adds a message to the history.
func (s *State) Append(msg Message) {
	s.Messages = append(s.Messages, msg)
	s.UpdatedAt = time.Now().UTC()
}

// Clear resets the history wholesale. Individual messages are never deleted.
func (s *State) Clear() {
	s.Messages = []Message{}
	s.UpdatedAt = time.Now().UTC()
}
