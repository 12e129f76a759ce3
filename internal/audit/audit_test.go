package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestAppend_CreatesFileAndWritesJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "llm_calls.jsonl")

	id1, err := Append(path, &Entry{Kind: "llm_call", Model: "test-model", Prompt: "p", Response: "r"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if id1 == "" {
		t.Fatalf("expected id")
	}
	_, err = Append(path, &Entry{Kind: "llm_call", Scenario: "cx_risk", Error: "rate limited"})
	if err != nil {
		t.Fatalf("append second: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	lines := 0
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("line %d not valid JSON: %v", lines+1, err)
		}
		if e.Timestamp == "" {
			t.Fatalf("line %d missing timestamp", lines+1)
		}
		lines++
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if lines != 2 {
		t.Fatalf("expected 2 lines, got %d", lines)
	}
}

func TestAppend_NoPath(t *testing.T) {
	if _, err := Append("", &Entry{Kind: "llm_call"}); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
