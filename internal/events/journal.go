package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is one journal line as read back from disk.
type Record struct {
	Session   string          `json:"session"`
	Type      Type            `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type journalLine struct {
	Session   string    `json:"session"`
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// Journal appends every event as a JSON line. Each process gets its own
// session id so interleaved writers sharing a file can be told apart.
type Journal struct {
	mu      sync.Mutex
	file    *os.File
	session string
	logger  *slog.Logger
}

// OpenJournal opens path for appending, creating parent directories.
func OpenJournal(path string, logger *slog.Logger) (*Journal, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return &Journal{file: file, session: uuid.NewString(), logger: logger}, nil
}

// Session returns this process's session id.
func (j *Journal) Session() string { return j.session }

// Deliver implements Sink. Write failures are logged and dropped.
func (j *Journal) Deliver(ev Event) {
	line, err := json.Marshal(journalLine{
		Session:   j.session,
		Type:      ev.Type,
		Timestamp: ev.Timestamp,
		Payload:   ev.Payload,
	})
	if err != nil {
		j.logger.Warn("encode journal line", "type", ev.Type, "error", err)
		return
	}
	line = append(line, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.file == nil {
		return
	}
	if _, err := j.file.Write(line); err != nil {
		j.logger.Warn("write journal line", "type", ev.Type, "error", err)
	}
}

// Close closes the underlying file. Later events are dropped.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.file == nil {
		return nil
	}
	err := j.file.Close()
	j.file = nil
	return err
}

// DecodeRecord parses one journal line.
func DecodeRecord(line string) (Record, error) {
	var rec Record
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return Record{}, fmt.Errorf("decode journal line: %w", err)
	}
	return rec, nil
}

var _ Sink = (*Journal)(nil)
