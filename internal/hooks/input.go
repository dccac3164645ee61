package hooks

import (
	"encoding/json"
	"fmt"
	"io"
)

// ToolInput represents the invocation payload from Claude Code.
type ToolInput struct {
	ToolName  string          `json:"tool_name"`
	ToolInput json.RawMessage `json:"tool_input"`
	parsed    map[string]interface{}
}

// ParseToolInput reads and parses the invocation payload JSON from a reader.
// A payload that is not valid JSON is a fatal input condition; an unknown or
// absent tool name passes through the pipelines as a silent approve instead.
// The tool_input object is left undecoded so that payloads for unrelated
// tools never fail on it; ParseArgs decodes it on demand.
func ParseToolInput(reader io.Reader) (*ToolInput, error) {
	var input ToolInput
	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return &input, nil
}

// ParseArgs decodes the tool_input object. It is fatal only when tool_input
// is present but not a JSON object; an absent tool_input yields no arguments.
func (t *ToolInput) ParseArgs() error {
	if t.parsed != nil || len(t.ToolInput) == 0 {
		return nil
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(t.ToolInput, &parsed); err != nil {
		return fmt.Errorf("failed to parse tool_input: %w", err)
	}
	t.parsed = parsed
	return nil
}

// GetStringArg retrieves a string argument from the tool input.
// Returns the value and true if found, empty string and false if not found.
func (t *ToolInput) GetStringArg(name string) (string, bool) {
	if t.parsed == nil {
		return "", false
	}

	value, ok := t.parsed[name]
	if !ok {
		return "", false
	}

	strValue, ok := value.(string)
	if !ok {
		return "", false
	}

	return strValue, true
}
