package hooks

import (
	"regexp"
	"strings"

	"github.com/claude-buddy/claude-buddy/internal/config"
)

// Category identifies the purpose of a rule within a RuleSet.
type Category int

const (
	// CategoryBlocking rules stop the action outright.
	CategoryBlocking Category = iota
	// CategoryPerformanceWarning rules flag performance anti-patterns.
	CategoryPerformanceWarning
	// CategoryBestPractice rules suggest safer or clearer alternatives.
	CategoryBestPractice
	// CategoryWhitelist rules exempt matching inputs from blocking.
	CategoryWhitelist
)

// String returns a short label for the category, used in warn rationales.
func (c Category) String() string {
	switch c {
	case CategoryBlocking:
		return "blocking"
	case CategoryPerformanceWarning:
		return "performance"
	case CategoryBestPractice:
		return "best-practice"
	case CategoryWhitelist:
		return "whitelist"
	}
	return "unknown"
}

// Rule pairs a compiled pattern with a human-readable description. Rules are
// immutable once constructed; identity is positional within a category list
// and duplicate patterns are legal, with the first match winning.
type Rule struct {
	Pattern     *regexp.Regexp
	Description string
	Category    Category

	// unless suppresses a match occurrence. It receives the input and the
	// occurrence bounds; returning true discards that occurrence. Rules
	// without a guard match on any occurrence.
	unless func(input string, start, end int) bool
}

// Matches reports whether the rule matches the input, honoring the guard.
func (r Rule) Matches(input string) bool {
	if r.unless == nil {
		return r.Pattern.MatchString(input)
	}
	for _, loc := range r.Pattern.FindAllStringIndex(input, -1) {
		if !r.unless(input, loc[0], loc[1]) {
			return true
		}
	}
	return false
}

// RuleSet holds one ordered rule list per category.
type RuleSet struct {
	Blocking     []Rule
	Performance  []Rule
	BestPractice []Rule
	Whitelist    []Rule
}

// searchPattern compiles pattern for case-insensitive unanchored search.
// Returns false when the pattern is not a valid regular expression.
func searchPattern(pattern string) (*regexp.Regexp, bool) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, false
	}
	return re, true
}

// prefixPattern compiles pattern for case-insensitive matching anchored at
// the start of the input, like file path rules expect.
func prefixPattern(pattern string) (*regexp.Regexp, bool) {
	re, err := regexp.Compile(`(?i)\A(?:` + pattern + `)`)
	if err != nil {
		return nil, false
	}
	return re, true
}

func mustSearch(pattern string) *regexp.Regexp {
	re, ok := searchPattern(pattern)
	if !ok {
		panic("invalid built-in pattern: " + pattern)
	}
	return re
}

func mustPrefix(pattern string) *regexp.Regexp {
	re, ok := prefixPattern(pattern)
	if !ok {
		panic("invalid built-in pattern: " + pattern)
	}
	return re
}

func blocking(pattern, description string) Rule {
	return Rule{Pattern: mustSearch(pattern), Description: description, Category: CategoryBlocking}
}

func performance(pattern, suggestion string) Rule {
	return Rule{Pattern: mustSearch(pattern), Description: suggestion, Category: CategoryPerformanceWarning}
}

func practice(pattern, suggestion string) Rule {
	return Rule{Pattern: mustSearch(pattern), Description: suggestion, Category: CategoryBestPractice}
}

func sensitive(pattern, description string) Rule {
	return Rule{Pattern: mustPrefix(pattern), Description: description, Category: CategoryBlocking}
}

// noLaterPipe suppresses a match when a pipe character occurs anywhere after
// the matched fragment, preserving the "warn only when not already piped"
// behavior of the original negative lookahead.
func noLaterPipe(input string, _, end int) bool {
	return strings.Contains(input[end:], "|")
}

// packageManagerFollows suppresses a sudo match when the next word is a
// package manager invocation.
func packageManagerFollows(input string, _, end int) bool {
	rest := strings.ToLower(input[end:])
	for _, pm := range []string{"apt", "yum", "brew"} {
		if strings.HasPrefix(rest, pm) {
			return true
		}
	}
	return false
}

// defaultDangerousCommands returns the built-in blocking rules for the
// command pipeline, in evaluation order.
func defaultDangerousCommands() []Rule {
	return []Rule{
		// Destructive file operations
		blocking(`rm\s+.*-rf?\s+/`, "Recursive deletion from root directory"),
		blocking(`rm\s+.*-rf?\s+\*`, "Recursive deletion with wildcards"),
		blocking(`rm\s+.*-rf?\s+~`, "Recursive deletion from home directory"),
		blocking(`>\s*/dev/sd[a-z]`, "Direct writes to disk devices"),

		// System modification
		blocking(`sudo\s+rm\s+.*-rf?`, "Sudo recursive deletion"),
		blocking(`chmod\s+777\s+/`, "Overly permissive root permissions"),
		blocking(`chown\s+.*:\s*/`, "Ownership changes to root directory"),

		// Network and system access
		blocking(`nc\s+.*-e`, "Netcat with command execution"),
		blocking(`curl\s+.*\|\s*sh`, "Downloading and executing scripts"),
		blocking(`wget\s+.*\|\s*sh`, "Downloading and executing scripts"),
		blocking(`bash\s+<\(curl`, "Bash execution from remote scripts"),

		// System formatting and partitioning
		blocking(`fdisk\s+/dev/`, "Disk partitioning operations"),
		blocking(`mkfs\.`, "Filesystem creation"),
		blocking(`dd\s+.*of=/dev/`, "Direct disk writes"),

		// Process manipulation
		blocking(`kill\s+-9\s+1`, "Killing init process"),
		blocking(`killall\s+-9`, "Forceful termination of all processes"),

		// System configuration
		blocking(`echo\s+.*>\s*/etc/`, "Writing to system configuration"),
		blocking(`>\s*/etc/passwd`, "Modifying user accounts"),
		blocking(`>\s*/etc/shadow`, "Modifying password file"),
	}
}

// defaultPerformanceWarnings returns the built-in performance rules.
func defaultPerformanceWarnings() []Rule {
	grepRule := performance(`grep\s+`, "Consider using 'rg' (ripgrep) for faster searching")
	grepRule.unless = noLaterPipe

	return []Rule{
		performance(`find\s+.*-name`, "Consider using 'rg --files -g pattern' for better performance"),
		grepRule,
		performance(`cat\s+.*\|\s*grep`, "Consider using 'rg pattern file' instead of 'cat file | grep pattern'"),
		performance(`ls\s+.*\|\s*grep`, "Consider using shell globbing or 'rg --files' instead"),
	}
}

// defaultBestPractices returns the built-in best practice rules.
func defaultBestPractices() []Rule {
	sudoRule := practice(`sudo\s+`, "Consider if sudo is really necessary for this operation")
	sudoRule.unless = packageManagerFollows

	return []Rule{
		sudoRule,
		practice(`chmod\s+\d{3,4}`, "Consider using symbolic permissions (e.g., 'chmod u+x') for clarity"),
		practice(`git\s+push\s+.*--force`, "Consider using '--force-with-lease' instead of '--force' for safer pushing"),
	}
}

// defaultSensitiveFiles returns the built-in blocking rules for the file
// pipeline. Patterns are anchored at the start of the path or base name.
func defaultSensitiveFiles() []Rule {
	return []Rule{
		// Environment and secrets
		sensitive(`\.env.*`, "Environment file"),
		sensitive(`.*\.key$`, "Key file"),
		sensitive(`.*\.pem$`, "PEM key file"),
		sensitive(`.*\.p12$`, "PKCS#12 key store"),
		sensitive(`.*\.pfx$`, "PKCS#12 key store"),
		sensitive(`secrets?\..*`, "Secrets file"),
		sensitive(`credentials?\..*`, "Credentials file"),
		sensitive(`.*secret.*`, "File named like a secret"),
		sensitive(`.*credential.*`, "File named like a credential"),

		// SSH and crypto
		sensitive(`id_rsa.*`, "SSH private key"),
		sensitive(`id_ed25519.*`, "SSH private key"),
		sensitive(`known_hosts`, "SSH known hosts"),
		sensitive(`authorized_keys`, "SSH authorized keys"),

		// Database
		sensitive(`.*\.sqlite.*`, "SQLite database"),
		sensitive(`.*\.db$`, "Database file"),

		// Configuration that might contain secrets
		sensitive(`\.aws/.*`, "AWS configuration"),
		sensitive(`\.ssh/.*`, "SSH configuration"),
		sensitive(`\.docker/config\.json`, "Docker registry credentials"),

		// Common secret file names
		sensitive(`api[-_]?keys?\..*`, "API key file"),
		sensitive(`tokens?\..*`, "Token file"),
		sensitive(`passwords?\..*`, "Password file"),
	}
}

// criticalPathPrefixes are system locations protected by literal prefix
// comparison, ahead of and independent of the pattern lists. The whitelist
// never overrides these.
var criticalPathPrefixes = []string{
	"/etc/passwd",
	"/etc/shadow",
	"/etc/sudoers",
	"/boot/",
	"/sys/",
	"/proc/",
}

// BuildCommandRuleSet merges the built-in command rules with config-supplied
// additions. Invalid user patterns are skipped rather than failing the run.
func BuildCommandRuleSet(cfg config.CommandValidation) RuleSet {
	rs := RuleSet{
		Blocking:     defaultDangerousCommands(),
		Performance:  defaultPerformanceWarnings(),
		BestPractice: defaultBestPractices(),
	}

	for _, pattern := range cfg.AdditionalDangerousPatterns {
		if re, ok := searchPattern(pattern); ok {
			rs.Blocking = append(rs.Blocking, Rule{Pattern: re, Description: "Custom dangerous pattern", Category: CategoryBlocking})
		}
	}
	for _, pattern := range cfg.WhitelistPatterns {
		if re, ok := searchPattern(pattern); ok {
			rs.Whitelist = append(rs.Whitelist, Rule{Pattern: re, Category: CategoryWhitelist})
		}
	}

	return rs
}

// BuildFileRuleSet merges the built-in sensitive file rules with
// config-supplied additions. File whitelist patterns match anchored at the
// start of the path, like the sensitive patterns themselves.
func BuildFileRuleSet(cfg config.FileProtection) RuleSet {
	rs := RuleSet{
		Blocking: defaultSensitiveFiles(),
	}

	for _, pattern := range cfg.AdditionalPatterns {
		if re, ok := prefixPattern(pattern); ok {
			rs.Blocking = append(rs.Blocking, Rule{Pattern: re, Description: "Custom protected pattern", Category: CategoryBlocking})
		}
	}
	for _, pattern := range cfg.WhitelistPatterns {
		if re, ok := prefixPattern(pattern); ok {
			rs.Whitelist = append(rs.Whitelist, Rule{Pattern: re, Category: CategoryWhitelist})
		}
	}

	return rs
}
