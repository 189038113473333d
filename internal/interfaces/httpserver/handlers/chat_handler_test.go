package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/fusbox/chatarbor-alternative/internal/domain/chat"
	"github.com/fusbox/chatarbor-alternative/internal/domain/conversation"
	"github.com/fusbox/chatarbor-alternative/internal/interfaces/httpserver/handlers"
)

// MockChatService is a function-field mock of handlers.ChatService.
type MockChatService struct {
	RunTurnFunc       func(ctx context.Context, params chat.TurnParams) (*chat.TurnResult, error)
	GetSessionFunc    func(ctx context.Context, id string) (*conversation.State, error)
	ListSessionsFunc  func(ctx context.Context) ([]*conversation.State, error)
	ClearMessagesFunc func(ctx context.Context, id string) (*conversation.State, error)
	UpdateModelFunc   func(ctx context.Context, id, model string) (*conversation.State, error)
}

func (m *MockChatService) RunTurn(ctx context.Context, params chat.TurnParams) (*chat.TurnResult, error) {
	if m.RunTurnFunc != nil {
		return m.RunTurnFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockChatService) GetSession(ctx context.Context, id string) (*conversation.State, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockChatService) ListSessions(ctx context.Context) ([]*conversation.State, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return nil, nil
}

func (m *MockChatService) ClearMessages(ctx context.Context, id string) (*conversation.State, error) {
	if m.ClearMessagesFunc != nil {
		return m.ClearMessagesFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockChatService) UpdateModel(ctx context.Context, id, model string) (*conversation.State, error) {
	if m.UpdateModelFunc != nil {
		return m.UpdateModelFunc(ctx, id, model)
	}
	return nil, nil
}

func newChatRouter(service handlers.ChatService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewChatHandler(service, zerolog.Nop())
	engine := gin.New()
	engine.POST("/v1/chat", handler.Chat)
	engine.GET("/v1/sessions/:session_id", handler.GetSession)
	engine.PATCH("/v1/sessions/:session_id/model", handler.UpdateModel)
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestChat_NonStreaming(t *testing.T) {
	service := &MockChatService{
		RunTurnFunc: func(ctx context.Context, params chat.TurnParams) (*chat.TurnResult, error) {
			if params.Sink != nil {
				t.Error("non-streaming request must not set a sink")
			}
			msg := conversation.NewMessage(conversation.RoleAssistant, "hello back")
			return &chat.TurnResult{Message: msg, Context: "- doc (Source: t)"}, nil
		},
	}
	engine := newChatRouter(service)

	rec := postJSON(t, engine, "/v1/chat", map[string]interface{}{
		"session_id": "s1",
		"message":    "hello",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body struct {
		SessionID string               `json:"session_id"`
		Message   conversation.Message `json:"message"`
		Context   string               `json:"context"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.SessionID != "s1" {
		t.Errorf("session_id = %q", body.SessionID)
	}
	if body.Message.Content != "hello back" {
		t.Errorf("message = %q", body.Message.Content)
	}
}

func TestChat_GeneratesSessionID(t *testing.T) {
	var seen string
	service := &MockChatService{
		RunTurnFunc: func(ctx context.Context, params chat.TurnParams) (*chat.TurnResult, error) {
			seen = params.SessionID
			return &chat.TurnResult{Message: conversation.NewMessage(conversation.RoleAssistant, "ok")}, nil
		},
	}
	engine := newChatRouter(service)

	rec := postJSON(t, engine, "/v1/chat", map[string]interface{}{"message": "hi"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if seen == "" {
		t.Error("handler did not mint a session id")
	}
}

func TestChat_MissingMessage(t *testing.T) {
	engine := newChatRouter(&MockChatService{})

	rec := postJSON(t, engine, "/v1/chat", map[string]interface{}{"session_id": "s1"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestChat_BusyConflict(t *testing.T) {
	service := &MockChatService{
		RunTurnFunc: func(ctx context.Context, params chat.TurnParams) (*chat.TurnResult, error) {
			return nil, chat.ErrSessionBusy
		},
	}
	engine := newChatRouter(service)

	rec := postJSON(t, engine, "/v1/chat", map[string]interface{}{
		"session_id": "s1",
		"message":    "hello",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestChat_StreamingWritesChunks(t *testing.T) {
	service := &MockChatService{
		RunTurnFunc: func(ctx context.Context, params chat.TurnParams) (*chat.TurnResult, error) {
			for _, chunk := range []string{"Hel", "lo", "\n" + chat.ContextOpenMarker + chat.ContextCloseMarker} {
				if err := params.Sink(chunk); err != nil {
					return nil, err
				}
			}
			return &chat.TurnResult{Message: conversation.NewMessage(conversation.RoleAssistant, "Hello")}, nil
		},
	}
	engine := newChatRouter(service)

	rec := postJSON(t, engine, "/v1/chat", map[string]interface{}{
		"session_id": "s1",
		"message":    "hi",
		"stream":     true,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "Hello") {
		t.Errorf("body = %q, want answer chunks first", body)
	}
	if !strings.HasSuffix(body, chat.ContextCloseMarker) {
		t.Errorf("body = %q, want trailing context sentinel", body)
	}
}

func TestChat_StreamingBusyStillJSON(t *testing.T) {
	service := &MockChatService{
		RunTurnFunc: func(ctx context.Context, params chat.TurnParams) (*chat.TurnResult, error) {
			return nil, chat.ErrSessionBusy
		},
	}
	engine := newChatRouter(service)

	rec := postJSON(t, engine, "/v1/chat", map[string]interface{}{
		"session_id": "s1",
		"message":    "hi",
		"stream":     true,
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 when rejected before streaming", rec.Code)
	}
}

func TestGetSession_NotFound(t *testing.T) {
	service := &MockChatService{
		GetSessionFunc: func(ctx context.Context, id string) (*conversation.State, error) {
			return nil, conversation.ErrNotFound
		},
	}
	engine := newChatRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/missing", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateModel(t *testing.T) {
	service := &MockChatService{
		UpdateModelFunc: func(ctx context.Context, id, model string) (*conversation.State, error) {
			state := conversation.NewState(id, model)
			return state, nil
		},
	}
	engine := newChatRouter(service)

	payload, _ := json.Marshal(map[string]string{"model": "new-model"})
	req := httptest.NewRequest(http.MethodPatch, "/v1/sessions/s1/model", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var state conversation.State
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.Model != "new-model" {
		t.Errorf("model = %q", state.Model)
	}
}
