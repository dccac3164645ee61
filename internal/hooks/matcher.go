package hooks

import (
	"path/filepath"
	"strings"
)

// MatchResult is the outcome of evaluating one input against a RuleSet.
type MatchResult struct {
	// Whitelisted is true when a whitelist pattern matched. No other
	// category is evaluated in that case.
	Whitelisted bool

	// Blocking is the first matching blocking rule, or nil.
	Blocking *Rule

	// Critical is true when the input hit a critical system path prefix.
	// The whitelist never overrides this.
	Critical bool

	// CriticalPath names the prefix that was hit.
	CriticalPath string

	// Warnings collects every matching performance and best practice
	// rule, in category order and list order within a category.
	Warnings []Rule
}

// Matcher evaluates a single input string against a RuleSet with
// whitelist-first precedence. The zero value with a RuleSet evaluates the
// input itself against every enabled category; the file pipeline customizes
// the match targets and the critical path pre-check.
type Matcher struct {
	RuleSet RuleSet

	// BlockDangerous gates the whitelist and blocking evaluation. When
	// off there is no blocking decision for the whitelist to preempt, so
	// both are skipped.
	BlockDangerous bool

	// WarnPerformance gates the performance category.
	WarnPerformance bool

	// SuggestBestPractices gates the best practice category.
	SuggestBestPractices bool

	// Targets derives the strings tested against blocking patterns.
	// Nil means the input itself. The file pipeline tests both the
	// normalized path and the base name.
	Targets func(input string) []string

	// WhitelistTargets derives the strings tested against whitelist
	// patterns. Nil means the input itself.
	WhitelistTargets func(input string) []string

	// PreCheck runs before any pattern evaluation and is immune to the
	// whitelist. A true result blocks the input outright.
	PreCheck func(input string) (string, bool)
}

// Evaluate classifies input against the matcher's rule set.
func (m *Matcher) Evaluate(input string) MatchResult {
	var result MatchResult

	if m.PreCheck != nil {
		if path, hit := m.PreCheck(input); hit {
			result.Critical = true
			result.CriticalPath = path
			return result
		}
	}

	if m.BlockDangerous {
		for _, rule := range m.RuleSet.Whitelist {
			if matchAny(rule, m.whitelistTargets(input)) {
				result.Whitelisted = true
				return result
			}
		}

		targets := m.targets(input)
		for i := range m.RuleSet.Blocking {
			if matchAny(m.RuleSet.Blocking[i], targets) {
				result.Blocking = &m.RuleSet.Blocking[i]
				break
			}
		}
	}

	if m.WarnPerformance {
		for _, rule := range m.RuleSet.Performance {
			if rule.Matches(input) {
				result.Warnings = append(result.Warnings, rule)
			}
		}
	}
	if m.SuggestBestPractices {
		for _, rule := range m.RuleSet.BestPractice {
			if rule.Matches(input) {
				result.Warnings = append(result.Warnings, rule)
			}
		}
	}

	return result
}

func (m *Matcher) targets(input string) []string {
	if m.Targets == nil {
		return []string{input}
	}
	return m.Targets(input)
}

func (m *Matcher) whitelistTargets(input string) []string {
	if m.WhitelistTargets == nil {
		return []string{input}
	}
	return m.WhitelistTargets(input)
}

func matchAny(rule Rule, targets []string) bool {
	for _, target := range targets {
		if rule.Matches(target) {
			return true
		}
	}
	return false
}

// NewCommandMatcher builds the matcher for the command pipeline.
func NewCommandMatcher(rs RuleSet, blockDangerous, warnPerformance, suggestBestPractices bool) *Matcher {
	return &Matcher{
		RuleSet:              rs,
		BlockDangerous:       blockDangerous,
		WarnPerformance:      warnPerformance,
		SuggestBestPractices: suggestBestPractices,
	}
}

// NewFileMatcher builds the matcher for the file pipeline. Blocking patterns
// are tested against both the normalized path and the base name; whitelist
// patterns only against the normalized path. Critical system path prefixes
// are checked first and cannot be whitelisted.
func NewFileMatcher(rs RuleSet) *Matcher {
	return &Matcher{
		RuleSet:        rs,
		BlockDangerous: true,
		Targets: func(path string) []string {
			normalized := filepath.Clean(path)
			return []string{normalized, filepath.Base(normalized)}
		},
		WhitelistTargets: func(path string) []string {
			return []string{filepath.Clean(path)}
		},
		PreCheck: criticalPathHit,
	}
}

// criticalPathHit reports whether the normalized path falls under one of the
// protected system locations.
func criticalPathHit(path string) (string, bool) {
	normalized := filepath.Clean(path)
	for _, prefix := range criticalPathPrefixes {
		if strings.HasPrefix(normalized, prefix) {
			return prefix, true
		}
	}
	return "", false
}
