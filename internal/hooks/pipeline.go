// Package hooks implements the Claude Buddy decision pipelines: rule sets,
// pattern matching with whitelist precedence, decision building, and the
// response contract consumed by the invoking host.
package hooks

import (
	"io"
	"strings"

	"github.com/claude-buddy/claude-buddy/internal/audit"
	"github.com/claude-buddy/claude-buddy/internal/config"
)

// Audit trail identifiers, one per pipeline.
const (
	commandTool = "command-validator"
	fileTool    = "file-guard"
)

// Audit action values for the command pipeline.
const (
	actionBlocked  = "blocked"
	actionWarned   = "warned"
	actionApproved = "approved"
)

// CommandHook is the command validation pipeline, end to end: payload in,
// response and exit code out, audit record on the side.
type CommandHook struct {
	Loader *config.Loader
	Audit  *audit.Logger
}

// NewCommandHook creates the command pipeline with the default config
// locations and audit log.
func NewCommandHook() *CommandHook {
	return &CommandHook{
		Loader: config.NewLoader(),
		Audit:  audit.NewLogger(audit.DefaultDir, audit.CommandLog),
	}
}

// Run processes one invocation payload from in and writes the response to
// out. It returns the process exit code, or a non-nil error for a malformed
// payload (in which case nothing is written and no record is logged).
func (h *CommandHook) Run(in io.Reader, out io.Writer) (int, error) {
	input, err := ParseToolInput(in)
	if err != nil {
		return 1, err
	}

	if input.ToolName != "Bash" {
		return WriteResponse(out, NewApproveDecision())
	}

	if err := input.ParseArgs(); err != nil {
		return 1, err
	}

	command, _ := input.GetStringArg("command")
	if strings.TrimSpace(command) == "" {
		return WriteResponse(out, NewApproveDecision())
	}

	cfg := h.Loader.Load().CommandValidation
	if !cfg.Enabled {
		return WriteResponse(out, NewApproveDecision())
	}

	matcher := NewCommandMatcher(BuildCommandRuleSet(cfg), cfg.BlockDangerous, cfg.WarnPerformance, cfg.SuggestBestPractices)
	result := matcher.Evaluate(command)
	decision := BuildCommandDecision(result, command)

	h.Audit.Record(audit.Record{
		Command:  command,
		Action:   commandAction(decision),
		Blocked:  decision.Outcome == OutcomeBlock,
		Warnings: commandAuditWarnings(result),
		Tool:     commandTool,
	})

	return WriteResponse(out, decision)
}

func commandAction(d Decision) string {
	switch d.Outcome {
	case OutcomeBlock:
		return actionBlocked
	case OutcomeWarn:
		return actionWarned
	}
	return actionApproved
}

func commandAuditWarnings(result MatchResult) []string {
	if result.Blocking != nil {
		return []string{result.Blocking.Description}
	}
	warnings := make([]string, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		warnings = append(warnings, w.Description)
	}
	return warnings
}

// fileTools are the write/edit family handled by the file pipeline.
var fileTools = map[string]bool{
	"Write":     true,
	"Edit":      true,
	"MultiEdit": true,
}

// FileHook is the file protection pipeline.
type FileHook struct {
	Loader *config.Loader
	Audit  *audit.Logger
}

// NewFileHook creates the file pipeline with the default config locations
// and audit log.
func NewFileHook() *FileHook {
	return &FileHook{
		Loader: config.NewLoader(),
		Audit:  audit.NewLogger(audit.DefaultDir, audit.ProtectionLog),
	}
}

// Run processes one invocation payload from in and writes the response to
// out. Tool names outside the write/edit family pass through as a silent
// approve without any pattern evaluation.
func (h *FileHook) Run(in io.Reader, out io.Writer) (int, error) {
	input, err := ParseToolInput(in)
	if err != nil {
		return 1, err
	}

	if !fileTools[input.ToolName] {
		return WriteResponse(out, NewApproveDecision())
	}

	if err := input.ParseArgs(); err != nil {
		return 1, err
	}

	path, _ := input.GetStringArg("file_path")
	if path == "" {
		return WriteResponse(out, NewApproveDecision())
	}

	cfg := h.Loader.Load().FileProtection
	if !cfg.Enabled {
		return WriteResponse(out, NewApproveDecision())
	}

	matcher := NewFileMatcher(BuildFileRuleSet(cfg))
	result := matcher.Evaluate(path)
	decision := BuildFileDecision(result, path)

	h.Audit.Record(audit.Record{
		FilePath: path,
		Action:   input.ToolName,
		Blocked:  decision.Outcome == OutcomeBlock,
		Tool:     fileTool,
	})

	return WriteResponse(out, decision)
}
