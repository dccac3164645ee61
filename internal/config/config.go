// Package config handles loading and merging Claude Buddy configuration files.
package config

// Config is the resolved Claude Buddy configuration. Every field carries a
// concrete value; optional fields absent from the source file are filled with
// their documented defaults at load time.
type Config struct {
	CommandValidation CommandValidation
	FileProtection    FileProtection
}

// CommandValidation configures the bash command validation pipeline.
type CommandValidation struct {
	// Enabled turns the whole pipeline on or off.
	Enabled bool

	// BlockDangerous enables blocking of dangerous command patterns.
	// When false the whitelist is not consulted either, since there is
	// no blocking decision left for it to override.
	BlockDangerous bool

	// WarnPerformance enables performance anti-pattern warnings.
	WarnPerformance bool

	// SuggestBestPractices enables best practice suggestions.
	SuggestBestPractices bool

	// AdditionalDangerousPatterns are user-supplied regular expressions
	// appended to the built-in dangerous pattern list.
	AdditionalDangerousPatterns []string

	// WhitelistPatterns are regular expressions that exempt matching
	// commands from dangerous pattern blocking.
	WhitelistPatterns []string

	// StrictMode is parsed and carried but not consumed yet; reserved
	// for future strictness tiers.
	StrictMode bool
}

// FileProtection configures the sensitive file protection pipeline.
type FileProtection struct {
	// Enabled turns the whole pipeline on or off.
	Enabled bool

	// AdditionalPatterns are user-supplied regular expressions appended
	// to the built-in sensitive file pattern list.
	AdditionalPatterns []string

	// WhitelistPatterns are regular expressions that exempt matching
	// paths from protection. Critical system paths are never exempted.
	WhitelistPatterns []string

	// StrictMode is parsed and carried but not consumed yet; reserved
	// for future strictness tiers.
	StrictMode bool
}

// Default returns the built-in configuration used when no config file exists:
// both pipelines fully enabled with empty pattern lists.
func Default() Config {
	return Config{
		CommandValidation: CommandValidation{
			Enabled:              true,
			BlockDangerous:       true,
			WarnPerformance:      true,
			SuggestBestPractices: true,
		},
		FileProtection: FileProtection{
			Enabled: true,
		},
	}
}

// fileConfig mirrors the on-disk schema. Booleans are pointers so that an
// absent field can be told apart from an explicit false.
type fileConfig struct {
	CommandValidation *commandValidationFile `json:"command_validation" yaml:"command_validation"`
	FileProtection    *fileProtectionFile    `json:"file_protection" yaml:"file_protection"`
}

type commandValidationFile struct {
	Enabled                     *bool    `json:"enabled" yaml:"enabled"`
	BlockDangerous              *bool    `json:"block_dangerous" yaml:"block_dangerous"`
	WarnPerformance             *bool    `json:"warn_performance" yaml:"warn_performance"`
	SuggestBestPractices        *bool    `json:"suggest_best_practices" yaml:"suggest_best_practices"`
	AdditionalDangerousPatterns []string `json:"additional_dangerous_patterns" yaml:"additional_dangerous_patterns"`
	WhitelistPatterns           []string `json:"whitelist_patterns" yaml:"whitelist_patterns"`
	StrictMode                  *bool    `json:"strict_mode" yaml:"strict_mode"`
}

type fileProtectionFile struct {
	Enabled            *bool    `json:"enabled" yaml:"enabled"`
	AdditionalPatterns []string `json:"additional_patterns" yaml:"additional_patterns"`
	WhitelistPatterns  []string `json:"whitelist_patterns" yaml:"whitelist_patterns"`
	StrictMode         *bool    `json:"strict_mode" yaml:"strict_mode"`
}

// resolve fills absent fields with defaults and returns the usable Config.
func (f fileConfig) resolve() Config {
	cfg := Default()

	if cv := f.CommandValidation; cv != nil {
		cfg.CommandValidation.Enabled = boolOr(cv.Enabled, true)
		cfg.CommandValidation.BlockDangerous = boolOr(cv.BlockDangerous, true)
		cfg.CommandValidation.WarnPerformance = boolOr(cv.WarnPerformance, true)
		cfg.CommandValidation.SuggestBestPractices = boolOr(cv.SuggestBestPractices, true)
		cfg.CommandValidation.AdditionalDangerousPatterns = cv.AdditionalDangerousPatterns
		cfg.CommandValidation.WhitelistPatterns = cv.WhitelistPatterns
		cfg.CommandValidation.StrictMode = boolOr(cv.StrictMode, false)
	}

	if fp := f.FileProtection; fp != nil {
		cfg.FileProtection.Enabled = boolOr(fp.Enabled, true)
		cfg.FileProtection.AdditionalPatterns = fp.AdditionalPatterns
		cfg.FileProtection.WhitelistPatterns = fp.WhitelistPatterns
		cfg.FileProtection.StrictMode = boolOr(fp.StrictMode, false)
	}

	return cfg
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
