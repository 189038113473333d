package tool

import (
	"context"
	"encoding/json"

	"github.com/fusbox/chatarbor-alternative/internal/domain/llm"
)

// Request is one tool invocation requested by the model, as reassembled from
// the stream: arguments are the raw concatenated JSON fragments, parsed only
// when the bridge executes the call.
type Request struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	RawArguments string `json:"raw_arguments"`
}

// Executable reports whether the request carries enough data to run.
func (r Request) Executable() bool {
	return r.Name != ""
}

// Call is a resolved tool invocation: the parsed arguments plus either the
// capability's structured output or an error descriptor. Immutable once
// resolved.
type Call struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
	Result    interface{}            `json:"result"`
}

// Failed reports whether the call resolved to an error descriptor.
func (c Call) Failed() bool {
	m, ok := c.Result.(map[string]interface{})
	if !ok {
		return false
	}
	_, found := m["error"]
	return found
}

// Runner abstracts the external tool capability provider.
type Runner interface {
	// Definitions lists the callable tools in OpenAI-compatible form.
	Definitions(ctx context.Context) ([]llm.ToolDefinition, error)
	// Execute invokes one capability by name.
	Execute(ctx context.Context, name string, args map[string]interface{}) (interface{}, error)
}

// ParseArguments decodes a reassembled argument string. An empty string
// decodes to an empty map.
func ParseArguments(raw string) (map[string]interface{}, error) {
	if raw == "" {
		return map[string]interface{}{}, nil
	}
	var args map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]interface{}{}
	}
	return args, nil
}
