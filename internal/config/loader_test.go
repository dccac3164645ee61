package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoader_Candidates(t *testing.T) {
	loader := &Loader{WorkDir: "/project", HomeDir: "/home/user"}

	assert.Equal(t, []string{
		"/project/.claude-buddy/config.json",
		"/project/.claude-buddy/config.yaml",
		"/home/user/.claude-buddy/config.json",
		"/home/user/.claude-buddy/config.yaml",
		"/project/.claude/buddy-config.json",
		"/home/user/.claude/buddy-config.json",
	}, loader.Candidates())
}

func TestLoader_CandidatesWithoutHome(t *testing.T) {
	loader := &Loader{WorkDir: "/project"}

	for _, candidate := range loader.Candidates() {
		assert.True(t, strings.HasPrefix(candidate, "/project"), candidate)
	}
}

func TestLoader_Load(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, workDir, homeDir string)
		want  func(t *testing.T, cfg Config)
	}{
		{
			name:  "no config files returns defaults",
			setup: func(t *testing.T, workDir, homeDir string) {},
			want: func(t *testing.T, cfg Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		{
			name: "project config wins over home config",
			setup: func(t *testing.T, workDir, homeDir string) {
				writeFile(t, filepath.Join(workDir, ".claude-buddy", "config.json"),
					`{"command_validation": {"warn_performance": false}}`)
				writeFile(t, filepath.Join(homeDir, ".claude-buddy", "config.json"),
					`{"command_validation": {"warn_performance": true}}`)
			},
			want: func(t *testing.T, cfg Config) {
				assert.False(t, cfg.CommandValidation.WarnPerformance)
			},
		},
		{
			name: "malformed candidate is skipped",
			setup: func(t *testing.T, workDir, homeDir string) {
				writeFile(t, filepath.Join(workDir, ".claude-buddy", "config.json"), `{not json`)
				writeFile(t, filepath.Join(homeDir, ".claude-buddy", "config.json"),
					`{"command_validation": {"block_dangerous": false}}`)
			},
			want: func(t *testing.T, cfg Config) {
				assert.False(t, cfg.CommandValidation.BlockDangerous)
			},
		},
		{
			name: "yaml config is parsed",
			setup: func(t *testing.T, workDir, homeDir string) {
				writeFile(t, filepath.Join(workDir, ".claude-buddy", "config.yaml"), `
command_validation:
  enabled: true
  whitelist_patterns:
    - rm -rf /tmp/.*
file_protection:
  enabled: false
`)
			},
			want: func(t *testing.T, cfg Config) {
				assert.Equal(t, []string{"rm -rf /tmp/.*"}, cfg.CommandValidation.WhitelistPatterns)
				assert.False(t, cfg.FileProtection.Enabled)
			},
		},
		{
			name: "legacy path is probed last",
			setup: func(t *testing.T, workDir, homeDir string) {
				writeFile(t, filepath.Join(workDir, ".claude", "buddy-config.json"),
					`{"file_protection": {"strict_mode": true}}`)
			},
			want: func(t *testing.T, cfg Config) {
				assert.True(t, cfg.FileProtection.StrictMode)
			},
		},
		{
			name: "all candidates malformed falls back to defaults",
			setup: func(t *testing.T, workDir, homeDir string) {
				writeFile(t, filepath.Join(workDir, ".claude-buddy", "config.json"), `garbage`)
				writeFile(t, filepath.Join(workDir, ".claude", "buddy-config.json"), `also garbage {`)
			},
			want: func(t *testing.T, cfg Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workDir := t.TempDir()
			homeDir := t.TempDir()
			tt.setup(t, workDir, homeDir)

			loader := &Loader{WorkDir: workDir, HomeDir: homeDir}
			tt.want(t, loader.Load())
		})
	}
}
