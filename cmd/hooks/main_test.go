package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()

	assert.Equal(t, "claude-buddy", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	commandNames := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		commandNames = append(commandNames, c.Name())
	}
	assert.ElementsMatch(t, []string{"validate-command", "guard-file", "init"}, commandNames)
}

func TestNewValidateCommandCmd(t *testing.T) {
	cmd := newValidateCommandCmd()

	assert.Equal(t, "validate-command", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotNil(t, cmd.RunE)

	err := cmd.Args(cmd, []string{})
	assert.NoError(t, err)

	err = cmd.Args(cmd, []string{"extra"})
	assert.Error(t, err)
}

func TestNewGuardFileCmd(t *testing.T) {
	cmd := newGuardFileCmd()

	assert.Equal(t, "guard-file", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotNil(t, cmd.RunE)
}

func TestValidateCommandCmd_Execute(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantErr      bool
		wantDecision string
	}{
		{
			name:         "safe command approves",
			input:        `{"tool_name": "Bash", "tool_input": {"command": "ls"}}`,
			wantDecision: "approve",
		},
		{
			name:         "unrelated tool approves",
			input:        `{"tool_name": "Glob", "tool_input": {"pattern": "*.go"}}`,
			wantDecision: "approve",
		},
		{
			name:    "invalid JSON returns error",
			input:   `{invalid json}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())

			cmd := newValidateCommandCmd()
			out := new(bytes.Buffer)
			errOut := new(bytes.Buffer)
			cmd.SetOut(out)
			cmd.SetErr(errOut)
			cmd.SetIn(strings.NewReader(tt.input))

			err := cmd.Execute()

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			var payload map[string]interface{}
			require.NoError(t, json.Unmarshal(out.Bytes(), &payload))
			assert.Equal(t, tt.wantDecision, payload["decision"])
		})
	}
}

func TestGuardFileCmd_Execute(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := newGuardFileCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader(`{"tool_name": "Read", "tool_input": {"file_path": ".env"}}`))

	err := cmd.Execute()

	require.NoError(t, err)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &payload))
	assert.Equal(t, "approve", payload["decision"])
}

func TestNewInitCmd(t *testing.T) {
	cmd := newInitCmd()

	assert.Equal(t, "init", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Flags().Lookup("command"))
	assert.NotNil(t, cmd.Flags().Lookup("global"))
}

func TestInitCmd_Execute(t *testing.T) {
	projectDir := t.TempDir()
	chdir(t, projectDir)

	cmd := newInitCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(projectDir, ".claude", "settings.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "claude-buddy validate-command")
	assert.Contains(t, string(data), "claude-buddy guard-file")
	assert.Contains(t, out.String(), filepath.Join(projectDir, ".claude", "settings.json"))
}

func TestInitCmd_ExecuteGlobal(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	projectDir := t.TempDir()
	chdir(t, projectDir)

	cmd := newInitCmd()
	cmd.SetArgs([]string{"--global"})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(homeDir, ".claude", "settings.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "claude-buddy validate-command")
	assert.NoFileExists(t, filepath.Join(projectDir, ".claude", "settings.json"))
}

// chdir changes the working directory for the duration of the test,
// restoring the original directory on cleanup. It stands in for
// testing.T.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}
