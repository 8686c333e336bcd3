// Package applog appends accepted submissions to a JSON-lines file when the
// operator enables it. Each line is "[timestamp] {json}".
package applog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"carleadbot/pkg/ports/notifyport"
)

// FileLogger appends records to a single log file, serialized by a mutex so
// concurrent turns never interleave partial lines.
type FileLogger struct {
	mu   sync.Mutex
	path string
}

var _ notifyport.AppLogger = (*FileLogger)(nil)

func NewFileLogger(path string) (*FileLogger, error) {
	if path == "" {
		return nil, fmt.Errorf("applog: path cannot be empty")
	}
	return &FileLogger{path: path}, nil
}

func (l *FileLogger) Append(ctx context.Context, rec notifyport.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	payload, err := json.Marshal(rec.Fields)
	if err != nil {
		return fmt.Errorf("applog: failed to marshal record: %w", err)
	}
	line := fmt.Sprintf("[%s] %s\n", ts.Format("2006-01-02 15:04:05"), payload)

	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("applog: failed to open %q: %w", l.path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("applog: failed to append to %q: %w", l.path, err)
	}
	return nil
}

// Nop discards records; used when SAVE_APPLICATIONS_TO_FILE is off.
type Nop struct{}

var _ notifyport.AppLogger = Nop{}

func (Nop) Append(ctx context.Context, rec notifyport.Record) error { return nil }
