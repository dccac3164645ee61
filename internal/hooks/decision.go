package hooks

import (
	"fmt"
	"strings"
)

// Outcome is the classification of a proposed action.
type Outcome int

const (
	// OutcomeApprove lets the action proceed silently.
	OutcomeApprove Outcome = iota
	// OutcomeWarn lets the action proceed but surfaces suggestions.
	OutcomeWarn
	// OutcomeBlock stops the action.
	OutcomeBlock
)

// String returns the lowercase name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeWarn:
		return "warn"
	case OutcomeBlock:
		return "block"
	}
	return "approve"
}

// Decision is the terminal result of one invocation, consumed by the host
// adapter and then discarded.
type Decision struct {
	Outcome        Outcome
	Rationale      string
	Continue       bool
	SuppressOutput bool
}

// ExitCode returns the process exit code communicating this decision to the
// host: 2 for a block, 0 otherwise.
func (d Decision) ExitCode() int {
	if d.Outcome == OutcomeBlock {
		return 2
	}
	return 0
}

// NewApproveDecision creates a silent pass-through decision.
func NewApproveDecision() Decision {
	return Decision{
		Outcome:        OutcomeApprove,
		Continue:       true,
		SuppressOutput: true,
	}
}

// BuildCommandDecision combines a command match result into a Decision.
// It is a pure function of its inputs.
func BuildCommandDecision(result MatchResult, command string) Decision {
	if result.Blocking != nil {
		return Decision{
			Outcome:   OutcomeBlock,
			Rationale: blockedCommandRationale(command, result.Blocking.Description, SaferAlternative(command)),
			Continue:  false,
		}
	}

	if len(result.Warnings) > 0 {
		return Decision{
			Outcome:   OutcomeWarn,
			Rationale: commandWarnRationale(command, result.Warnings),
			Continue:  true,
		}
	}

	return NewApproveDecision()
}

// BuildFileDecision combines a file match result into a Decision.
func BuildFileDecision(result MatchResult, path string) Decision {
	if result.Critical || result.Blocking != nil {
		return Decision{
			Outcome:   OutcomeBlock,
			Rationale: blockedFileRationale(path),
			Continue:  false,
		}
	}

	return NewApproveDecision()
}

// SaferAlternative suggests a safer approach for a dangerous command based on
// simple keyword inspection.
func SaferAlternative(command string) string {
	lower := strings.ToLower(command)

	switch {
	case strings.Contains(lower, "rm -rf"):
		return "Consider using 'trash' command or move files to a backup location first"
	case strings.Contains(lower, "chmod 777"):
		return "Use more specific permissions like 'chmod u+rwx,g+r,o+r' instead"
	case strings.Contains(lower, "curl") && strings.Contains(lower, "|") && strings.Contains(lower, "sh"):
		return "Download the script first, review it, then execute: wget script.sh && cat script.sh && bash script.sh"
	case strings.Contains(lower, "sudo") && strings.Contains(lower, "rm"):
		return "Double-check the path and consider using a non-destructive approach first"
	default:
		return "Review the command carefully and consider if there's a safer approach"
	}
}

func blockedCommandRationale(command, risk, alternative string) string {
	return fmt.Sprintf(`Dangerous Command Blocked: '%s'

Risk: %s

Claude Buddy blocked this command to protect your system from potential damage.

Safer approach: %s

If you're certain this command is safe:
1. Run it directly in your terminal
2. Add to whitelist in .claude-buddy/config.json
3. Use /buddy-config to adjust validation settings`, command, risk, alternative)
}

func commandWarnRationale(command string, warnings []Rule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Command Analysis: '%s'\n", command)

	writeSection := func(header string, category Category) {
		wrote := false
		for _, w := range warnings {
			if w.Category != category {
				continue
			}
			if !wrote {
				b.WriteString("\n" + header + "\n")
				wrote = true
			}
			fmt.Fprintf(&b, "  - %s\n", w.Description)
		}
	}
	writeSection("Performance Suggestions:", CategoryPerformanceWarning)
	writeSection("Best Practice Suggestions:", CategoryBestPractice)

	b.WriteString("\nCommand will proceed, but consider the suggestions above.")
	return b.String()
}

// FileContext explains why a path is treated as sensitive, selected by
// keyword inspection of the path.
func FileContext(path string) string {
	lower := strings.ToLower(path)

	switch {
	case strings.Contains(lower, ".env"):
		return "Environment files often contain API keys, database credentials, and other secrets."
	case hasAnySubstring(lower, ".key", ".pem", ".p12", ".pfx"):
		return "Cryptographic key files contain sensitive security credentials."
	case strings.Contains(lower, "secret") || strings.Contains(lower, "credential"):
		return "Files with 'secret' or 'credential' in the name typically contain sensitive data."
	case hasAnySubstring(lower, "id_rsa", "id_ed25519"):
		return "SSH private keys provide authentication access and should be protected."
	case strings.Contains(lower, ".sqlite") || strings.HasSuffix(lower, ".db"):
		return "Database files may contain sensitive user data and should be handled carefully."
	default:
		return "This file matches patterns for sensitive data and is protected by Claude Buddy."
	}
}

func blockedFileRationale(path string) string {
	return fmt.Sprintf(`File Protection: Access to '%s' has been blocked.

%s

Claude Buddy protects sensitive files to prevent accidental exposure of:
- API keys and secrets
- Database credentials
- SSH private keys
- Authentication tokens
- Personal data

To modify this file:
1. Use your text editor directly
2. Add to whitelist in .claude-buddy/config.json
3. Disable protection temporarily with /buddy-config`, path, FileContext(path))
}

func hasAnySubstring(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
