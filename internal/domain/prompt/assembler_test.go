package prompt_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fusbox/chatarbor-alternative/internal/domain/conversation"
	"github.com/fusbox/chatarbor-alternative/internal/domain/knowledge"
	"github.com/fusbox/chatarbor-alternative/internal/domain/prompt"
)

func history(n int) []conversation.Message {
	msgs := make([]conversation.Message, n)
	for i := range msgs {
		role := conversation.RoleUser
		if i%2 == 1 {
			role = conversation.RoleAssistant
		}
		msgs[i] = conversation.Message{ID: fmt.Sprintf("m%d", i), Role: role, Content: fmt.Sprintf("message %d", i)}
	}
	return msgs
}

func TestAssemble_Ordering(t *testing.T) {
	out := prompt.Assemble(prompt.Params{
		SystemInstruction: "You are a test assistant.",
		History:           history(2),
		UserMessage:       "hello",
	})

	if out[0].Role != conversation.RoleSystem {
		t.Errorf("first message role = %s, want system", out[0].Role)
	}
	last := out[len(out)-1]
	if last.Role != conversation.RoleUser || last.Content != "hello" {
		t.Errorf("last message = %+v, want the new user message", last)
	}
}

func TestAssemble_HistoryTruncation(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		window  int
		wantLen int
	}{
		{"shorter than window", 3, 5, 3},
		{"equal to window", 5, 5, 5},
		{"longer than window", 12, 5, 5},
		{"default window", 9, 0, 5},
		{"window of three", 10, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := prompt.Assemble(prompt.Params{
				SystemInstruction: "sys",
				History:           history(tt.length),
				UserMessage:       "next",
				HistoryWindow:     tt.window,
			})

			got := out[1 : len(out)-1]
			if len(got) != tt.wantLen {
				t.Fatalf("history in prompt has %d messages, want %d", len(got), tt.wantLen)
			}
			start := tt.length - tt.wantLen
			for i, msg := range got {
				want := fmt.Sprintf("message %d", start+i)
				if msg.Content != want {
					t.Errorf("history[%d] = %q, want %q", i, msg.Content, want)
				}
			}
		})
	}
}

func TestAssemble_DefaultSystemInstruction(t *testing.T) {
	for _, instruction := range []string{"", "   ", "\n\t"} {
		out := prompt.Assemble(prompt.Params{
			SystemInstruction: instruction,
			UserMessage:       "hi",
		})
		if !strings.Contains(out[0].Content, "ChatArbor") {
			t.Errorf("system instruction %q should fall back to the default, got %q", instruction, out[0].Content)
		}
	}
}

func TestAssemble_ContextBlock(t *testing.T) {
	docs := []knowledge.Document{
		{ID: "1", Title: "Job search", Content: "Use the portal to search jobs."},
		{ID: "2", Title: "Resumes", Content: "Keep your resume to one page."},
	}

	out := prompt.Assemble(prompt.Params{
		SystemInstruction: "sys",
		RetrievedDocs:     docs,
		UserMessage:       "how do I search?",
	})

	system := out[0].Content
	for _, doc := range docs {
		if !strings.Contains(system, doc.Content) {
			t.Errorf("system message missing document content %q", doc.Content)
		}
		if !strings.Contains(system, "(Source: "+doc.Title+")") {
			t.Errorf("system message missing source attribution for %q", doc.Title)
		}
	}
}

func TestAssemble_NoContextWithoutDocs(t *testing.T) {
	out := prompt.Assemble(prompt.Params{
		SystemInstruction: "sys",
		UserMessage:       "hi",
	})
	if strings.Contains(out[0].Content, "(Source:") {
		t.Errorf("system message should not contain a context block: %q", out[0].Content)
	}
}

func TestRenderContext_Empty(t *testing.T) {
	if got := prompt.RenderContext(nil); got != "" {
		t.Errorf("RenderContext(nil) = %q, want empty", got)
	}
}
