package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

type testStringer string

func (s testStringer) String() string { return string(s) }

func readLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not JSON: %q", line)
		}
		out = append(out, entry)
	}
	return out
}

func TestInitAndLoggingToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "promptlab.log")

	if err := Init(logPath, true); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	LogEvent("hello %s", "world")
	LogDebug("debug %d", 7)
	LogError("stream failed", errors.New("boom"))
	LogRequest(" out ", "openai", "gpt", map[string]any{"ok": true})
	if err := Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	entries := readLines(t, logPath)
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d: %v", len(entries), entries)
	}
	if entries[0]["msg"] != "hello world" {
		t.Fatalf("unexpected event entry: %v", entries[0])
	}
	if entries[1]["msg"] != "debug 7" {
		t.Fatalf("unexpected debug entry: %v", entries[1])
	}
	if entries[2]["error"] != "boom" {
		t.Fatalf("unexpected error entry: %v", entries[2])
	}
	req := entries[3]
	if req["direction"] != "OUT" || req["provider"] != "openai" || req["payload"] != `{"ok":true}` {
		t.Fatalf("unexpected request entry: %v", req)
	}
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "info.log")
	if err := Init(logPath, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	LogDebug("hidden")
	LogRequest("in", "", "", "chunk")
	LogEvent("shown")
	_ = Close()

	entries := readLines(t, logPath)
	if len(entries) != 1 || entries[0]["msg"] != "shown" {
		t.Fatalf("expected only the info entry, got %v", entries)
	}
}

func TestRequestFieldsDefaults(t *testing.T) {
	fields := requestFields(" in ", " ", "", nil)
	got := map[string]string{}
	for _, f := range fields {
		got[f.Key] = f.String
	}
	if got["direction"] != "IN" || got["provider"] != "unknown" || got["model"] != "unknown" || got["payload"] != "null" {
		t.Fatalf("unexpected defaults: %v", got)
	}
}

func TestFormatPayloadVariants(t *testing.T) {
	if got := formatPayload(nil); got != "null" {
		t.Fatalf("nil payload: %s", got)
	}
	if got := formatPayload(" "); got != `""` {
		t.Fatalf("empty string payload: %s", got)
	}
	if got := formatPayload([]byte("hi")); got != "hi" {
		t.Fatalf("byte payload: %s", got)
	}
	if got := formatPayload(testStringer("ok")); got != "ok" {
		t.Fatalf("stringer payload: %s", got)
	}
}

func TestInitEmptyPathDisablesLogging(t *testing.T) {
	if err := Init("", false); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	LogEvent("discard")
	if L().Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("expected a no-op logger")
	}
}
