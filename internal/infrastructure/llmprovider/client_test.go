package llmprovider_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fusbox/chatarbor-alternative/internal/domain/llm"
	"github.com/fusbox/chatarbor-alternative/internal/infrastructure/llmprovider"
)

func TestCreateChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret" {
			t.Errorf("Authorization = %q", auth)
		}

		var req llm.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Stream {
			t.Error("single-shot request must not set stream")
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(llm.ChatCompletionResponse{
			Choices: []llm.ChatCompletionChoice{{Message: llm.ChatMessage{Role: "assistant", Content: "pong"}}},
		})
	}))
	defer server.Close()

	client := llmprovider.NewClient(server.URL, "secret")
	resp, err := client.CreateChatCompletion(context.Background(), llm.ChatCompletionRequest{
		Model:    "test-model",
		Messages: []llm.ChatMessage{{Role: "user", Content: "ping"}},
	})
	if err != nil {
		t.Fatalf("CreateChatCompletion: %v", err)
	}
	if resp.Choices[0].Message.Content != "pong" {
		t.Errorf("content = %q", resp.Choices[0].Message.Content)
	}
}

func TestCreateChatCompletionStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req llm.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if !req.Stream {
			t.Error("stream flag not set")
		}

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, ": keepalive\n\n")
		fmt.Fprint(w, `data: {"choices":[{"delta":{"content":"Hel"}}]}`+"\n\n")
		fmt.Fprint(w, "data: not json\n\n")
		fmt.Fprint(w, `data: {"choices":[{"delta":{"content":"lo"},"finish_reason":"stop"}]}`+"\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	client := llmprovider.NewClient(server.URL, "")
	stream, err := client.CreateChatCompletionStream(context.Background(), llm.ChatCompletionRequest{Model: "test-model"})
	if err != nil {
		t.Fatalf("CreateChatCompletionStream: %v", err)
	}
	defer stream.Close()

	var text string
	for {
		delta, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Recv: %v", err)
		}
		for _, choice := range delta.Choices {
			text += choice.Delta.Content
		}
	}

	if text != "Hello" {
		t.Errorf("streamed text = %q, want Hello", text)
	}
}

func TestCreateChatCompletionStream_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := llmprovider.NewClient(server.URL, "")
	if _, err := client.CreateChatCompletionStream(context.Background(), llm.ChatCompletionRequest{}); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
