package requests

// ChatRequest is the body of POST /v1/chat.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
	Model     string `json:"model"`
	Stream    bool   `json:"stream"`
}

// UpdateModelRequest is the body of PATCH /v1/sessions/:session_id/model.
type UpdateModelRequest struct {
	Model string `json:"model" binding:"required"`
}

// DocumentRequest is the body for knowledge document creation and updates.
type DocumentRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// SystemPromptRequest is the body of PUT /v1/admin/system-prompt.
type SystemPromptRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// FeedbackRequest is the body of POST /v1/feedback.
type FeedbackRequest struct {
	UserPrompt  string         `json:"user_prompt" binding:"required"`
	BotResponse string         `json:"bot_response" binding:"required"`
	Ratings     map[string]int `json:"ratings" binding:"required"`
	Notes       string         `json:"notes"`
}
