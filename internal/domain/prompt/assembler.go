// Package prompt builds the ordered model-facing message sequence for one
// turn: system instruction first, retrieved context folded into it, a bounded
// window of history, and the new user message last.
package prompt

import (
	"fmt"
	"strings"

	"github.com/fusbox/chatarbor-alternative/internal/domain/conversation"
	"github.com/fusbox/chatarbor-alternative/internal/domain/knowledge"
	"github.com/fusbox/chatarbor-alternative/internal/domain/llm"
)

// DefaultHistoryWindow bounds how many prior messages are carried into the
// prompt. Truncation drops the oldest first, never the newest.
const DefaultHistoryWindow = 5

// Params collects the inputs for one assembly. This is a pure transform with
// no observable failures.
type Params struct {
	SystemInstruction string
	RetrievedDocs     []knowledge.Document
	History           []conversation.Message
	UserMessage       string
	HistoryWindow     int
}

// Assemble produces the conversation sent to the model.
func Assemble(p Params) []llm.ChatMessage {
	system := strings.TrimSpace(p.SystemInstruction)
	if system == "" {
		system = DefaultSystemInstruction
	}

	if block := RenderContext(p.RetrievedDocs); block != "" {
		system = system + "\n\n" + RAGDirective + "\n" + block
	}

	window := p.HistoryWindow
	if window <= 0 {
		window = DefaultHistoryWindow
	}
	history := p.History
	if len(history) > window {
		history = history[len(history)-window:]
	}

	messages := make([]llm.ChatMessage, 0, len(history)+2)
	messages = append(messages, llm.ChatMessage{Role: conversation.RoleSystem, Content: system})
	for _, msg := range history {
		messages = append(messages, llm.ChatMessage{Role: msg.Role, Content: msg.Content})
	}
	messages = append(messages, llm.ChatMessage{Role: conversation.RoleUser, Content: p.UserMessage})

	return messages
}

// RenderContext renders retrieved documents into a single context block, one
// line per document. Empty input renders to an empty string so no context is
// injected.
func RenderContext(docs []knowledge.Document) string {
	if len(docs) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, doc := range docs {
		fmt.Fprintf(&sb, "- %s (Source: %s)\n", doc.Content, doc.Title)
	}
	return strings.TrimRight(sb.String(), "\n")
}
