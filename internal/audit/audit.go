// Package audit appends LLM call records to a JSONL audit log.
package audit

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry is one audit record. Prompt and Response are stored verbatim so a
// report can be traced back to the exact model exchange that produced it.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"ts"`
	Kind      string `json:"kind"`
	Scenario  string `json:"scenario,omitempty"`
	Model     string `json:"model,omitempty"`
	Prompt    string `json:"prompt,omitempty"`
	Response  string `json:"response,omitempty"`
	Error     string `json:"error,omitempty"`
}

func newID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("a-%d", time.Now().UnixNano())
	}
	return "a-" + hex.EncodeToString(b[:])
}

// Append writes the entry as one JSON line at path, creating the file and
// parent directory as needed. Returns the assigned entry ID.
func Append(path string, e *Entry) (string, error) {
	if path == "" {
		return "", fmt.Errorf("audit log path not configured")
	}
	if e.ID == "" {
		e.ID = newID()
	}
	if e.Timestamp == "" {
		e.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return "", fmt.Errorf("create audit dir: %w", err)
		}
	}

	line, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("marshal audit entry: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) // #nosec G304 - path comes from config
	if err != nil {
		return "", fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return "", fmt.Errorf("write audit entry: %w", err)
	}
	return e.ID, nil
}
