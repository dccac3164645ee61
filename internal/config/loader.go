package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader resolves the layered configuration by probing an ordered list of
// candidate file locations. Project-local files win over user-global ones,
// and the current config name wins over the legacy one.
type Loader struct {
	// WorkDir is the base for project-local candidates. Empty means the
	// process working directory.
	WorkDir string

	// HomeDir is the base for user-global candidates. Empty means the
	// current user's home directory; if that cannot be determined the
	// user-global candidates are skipped.
	HomeDir string
}

// NewLoader creates a Loader rooted at the process working directory and the
// current user's home directory.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{HomeDir: home}
}

// Load returns the first candidate config that can be read and parsed.
// A candidate that is missing, unreadable, or malformed is skipped; if none
// remain the built-in defaults are returned. Load never fails.
func (l *Loader) Load() Config {
	for _, path := range l.Candidates() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var raw fileConfig
		if err := unmarshal(path, data, &raw); err != nil {
			continue
		}

		return raw.resolve()
	}

	return Default()
}

// Candidates returns the probe order for config files.
func (l *Loader) Candidates() []string {
	var paths []string

	paths = append(paths,
		filepath.Join(l.WorkDir, ".claude-buddy", "config.json"),
		filepath.Join(l.WorkDir, ".claude-buddy", "config.yaml"),
	)
	if l.HomeDir != "" {
		paths = append(paths,
			filepath.Join(l.HomeDir, ".claude-buddy", "config.json"),
			filepath.Join(l.HomeDir, ".claude-buddy", "config.yaml"),
		)
	}
	paths = append(paths, filepath.Join(l.WorkDir, ".claude", "buddy-config.json"))
	if l.HomeDir != "" {
		paths = append(paths, filepath.Join(l.HomeDir, ".claude", "buddy-config.json"))
	}

	return paths
}

// unmarshal decodes data as JSON or YAML based on the file extension.
func unmarshal(path string, data []byte, target *fileConfig) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.Unmarshal(data, target)
	}
	return yaml.Unmarshal(data, target)
}
