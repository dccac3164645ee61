package hooks

import (
	"encoding/json"
	"fmt"
	"io"
)

// Response is the payload emitted to the host on stdout.
type Response struct {
	// Decision is "block" or "approve". Warn outcomes approve with a
	// reason attached.
	Decision string `json:"decision"`

	// Reason explains the decision. Omitted on a silent approve.
	Reason string `json:"reason,omitempty"`

	// Continue tells the host whether to proceed with the action.
	Continue bool `json:"continue"`

	// SuppressOutput asks the host not to surface this response.
	SuppressOutput bool `json:"suppressOutput"`
}

// NewResponse translates a Decision into the host's response shape.
func NewResponse(d Decision) Response {
	decision := "approve"
	if d.Outcome == OutcomeBlock {
		decision = "block"
	}
	return Response{
		Decision:       decision,
		Reason:         d.Rationale,
		Continue:       d.Continue,
		SuppressOutput: d.SuppressOutput,
	}
}

// WriteResponse emits the response for d to w as a single JSON line and
// returns the process exit code the host expects.
func WriteResponse(w io.Writer, d Decision) (int, error) {
	data, err := json.Marshal(NewResponse(d))
	if err != nil {
		return 1, fmt.Errorf("failed to encode response: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return 1, fmt.Errorf("failed to write response: %w", err)
	}
	return d.ExitCode(), nil
}
