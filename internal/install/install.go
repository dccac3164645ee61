// Package install registers the Claude Buddy hooks in a Claude Code
// settings file.
package install

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const (
	settingsFile = "settings.json"
	lockFile     = ".settings.lock"
)

// hookRegistration describes one PreToolUse matcher entry.
type hookRegistration struct {
	Matcher    string
	Subcommand string
}

var registrations = []hookRegistration{
	{Matcher: "Bash", Subcommand: "validate-command"},
	{Matcher: "Write|Edit|MultiEdit", Subcommand: "guard-file"},
}

// Installer writes hook registrations into a .claude/settings.json file,
// preserving whatever else the file contains. Concurrent installs (the two
// hooks are often installed by separate tool invocations) serialize on a
// file lock next to the settings file.
type Installer struct {
	// SettingsDir is the .claude directory to install into.
	SettingsDir string

	// Command is the binary invocation prefix registered for each hook,
	// e.g. "claude-buddy".
	Command string
}

// New creates an installer for the project-local .claude directory under
// baseDir, registering command as the hook binary.
func New(baseDir, command string) *Installer {
	return &Installer{
		SettingsDir: filepath.Join(baseDir, ".claude"),
		Command:     command,
	}
}

// Install merges the hook registrations into the settings file, creating the
// directory and file as needed. Already-registered hooks are left untouched.
func (i *Installer) Install() error {
	if err := os.MkdirAll(i.SettingsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	lock := flock.New(filepath.Join(i.SettingsDir, lockFile))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock settings file: %w", err)
	}
	defer lock.Unlock()

	path := filepath.Join(i.SettingsDir, settingsFile)
	settings, err := readSettings(path)
	if err != nil {
		return err
	}

	preToolUse := hookList(settings)
	for _, reg := range registrations {
		command := i.Command + " " + reg.Subcommand
		if containsHookCommand(preToolUse, command) {
			continue
		}
		preToolUse = append(preToolUse, map[string]interface{}{
			"matcher": reg.Matcher,
			"hooks": []interface{}{
				map[string]interface{}{
					"type":    "command",
					"command": command,
				},
			},
		})
	}
	setHookList(settings, preToolUse)

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}

// readSettings loads the existing settings file, or an empty document when
// the file does not exist. A malformed file is an error: clobbering user
// settings is worse than failing the install.
func readSettings(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]interface{}{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var settings map[string]interface{}
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse existing settings: %w", err)
	}
	if settings == nil {
		settings = map[string]interface{}{}
	}
	return settings, nil
}

func hookList(settings map[string]interface{}) []interface{} {
	hooks, ok := settings["hooks"].(map[string]interface{})
	if !ok {
		return nil
	}
	preToolUse, _ := hooks["PreToolUse"].([]interface{})
	return preToolUse
}

func setHookList(settings map[string]interface{}, preToolUse []interface{}) {
	hooks, ok := settings["hooks"].(map[string]interface{})
	if !ok {
		hooks = map[string]interface{}{}
		settings["hooks"] = hooks
	}
	hooks["PreToolUse"] = preToolUse
}

// containsHookCommand reports whether any registered hook already runs the
// given command.
func containsHookCommand(preToolUse []interface{}, command string) bool {
	for _, entry := range preToolUse {
		entryMap, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		hooks, ok := entryMap["hooks"].([]interface{})
		if !ok {
			continue
		}
		for _, hook := range hooks {
			hookMap, ok := hook.(map[string]interface{})
			if !ok {
				continue
			}
			if cmd, _ := hookMap["command"].(string); cmd == command {
				return true
			}
		}
	}
	return false
}
