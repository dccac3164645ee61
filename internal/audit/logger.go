// Package audit appends structured decision records to a persistent sink.
// Logging is best-effort: failures are swallowed so that a decision already
// computed is never blocked or altered by infrastructure problems.
package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Well-known log locations. One file per pipeline, JSON lines, append-only.
const (
	DefaultDir    = ".claude-buddy"
	CommandLog    = "commands.log"
	ProtectionLog = "protection.log"
)

// Record is one audit trail entry. Records are append-only and never read
// back by the engine. Command records carry the command text and file
// records the file path; each pipeline fills its own field.
type Record struct {
	Timestamp string   `json:"timestamp"`
	Command   string   `json:"command,omitempty"`
	FilePath  string   `json:"file_path,omitempty"`
	Action    string   `json:"action"`
	Blocked   bool     `json:"blocked"`
	Warnings  []string `json:"warnings,omitempty"`
	Tool      string   `json:"tool"`
}

// Sink appends one serialized record line to the audit trail.
type Sink interface {
	Append(line []byte) error
}

// fileSink appends lines to a file, creating the directory on demand.
// Each append opens, writes one line, and closes; ordering across concurrent
// process invocations is best-effort, relying on O_APPEND semantics.
type fileSink struct {
	dir      string
	filename string
}

func (s *fileSink) Append(line []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(s.dir, s.filename), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// Logger records decisions to a sink, timestamping each record.
type Logger struct {
	sink Sink
	now  func() time.Time
}

// NewLogger creates a logger appending to filename under dir.
func NewLogger(dir, filename string) *Logger {
	return NewLoggerWithSink(&fileSink{dir: dir, filename: filename})
}

// NewLoggerWithSink creates a logger with a custom sink.
func NewLoggerWithSink(sink Sink) *Logger {
	return &Logger{sink: sink, now: time.Now}
}

// SetTimeProvider overrides the timestamp source (allows fixed times in tests).
func (l *Logger) SetTimeProvider(now func() time.Time) {
	l.now = now
}

// Record appends one entry to the audit trail, best-effort. Any failure to
// serialize or append is discarded.
func (l *Logger) Record(rec Record) {
	if rec.Timestamp == "" {
		rec.Timestamp = l.now().Format(time.RFC3339)
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return
	}
	_ = l.sink.Append(line)
}
