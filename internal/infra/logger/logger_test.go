package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup_WritesJSONRecords(t *testing.T) {
	root := t.TempDir()
	cleanup, err := Setup(Config{Root: root})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}

	want := filepath.Join(root, ".mingpan", "logs", "mingpan.log")
	if Path() != want {
		t.Fatalf("Path()=%q, want %q", Path(), want)
	}
	Component("strokes").Warn("strokes.parse.short_line", "line", 3)
	L().Debug("hidden.at.info")

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup error: %v", err)
	}
	if Path() != "" {
		t.Fatalf("expected Path reset after cleanup, got %q", Path())
	}

	b, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := bytes.Split(bytes.TrimSpace(b), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("expected 2 records, got %d:\n%s", len(lines), b)
	}
	var rec map[string]any
	if err := json.Unmarshal(lines[1], &rec); err != nil {
		t.Fatalf("record is not JSON: %v", err)
	}
	if rec["msg"] != "strokes.parse.short_line" || rec["component"] != "strokes" || rec["level"] != "WARN" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if ts, _ := rec["time"].(string); !strings.HasSuffix(ts, "Z") {
		t.Fatalf("expected UTC timestamp, got %v", rec["time"])
	}
}

func TestSetup_DebugEnablesDebugRecords(t *testing.T) {
	root := t.TempDir()
	cleanup, err := Setup(Config{Root: root, Debug: true})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	L().Debug("pillars.cache.hit")
	_ = cleanup()

	b, _ := os.ReadFile(filepath.Join(root, ".mingpan", "logs", "mingpan.log"))
	if !strings.Contains(string(b), "pillars.cache.hit") || !strings.Contains(string(b), `"source"`) {
		t.Fatalf("expected debug record with source:\n%s", b)
	}
}

func TestSetup_RotatesOversizedLog(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".mingpan", "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "mingpan.log")
	if err := os.WriteFile(path, bytes.Repeat([]byte("x"), 64), 0o600); err != nil {
		t.Fatal(err)
	}

	cleanup, err := Setup(Config{Root: root, MaxBytes: 32})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	_ = cleanup()

	old, err := os.ReadFile(path + ".1")
	if err != nil || len(old) != 64 {
		t.Fatalf("expected backup with old content, len=%d err=%v", len(old), err)
	}
	cur, _ := os.ReadFile(path)
	if bytes.Contains(cur, []byte("xxxx")) {
		t.Fatalf("expected fresh log after rotation")
	}
}

func TestL_DiscardsBeforeSetup(t *testing.T) {
	if Path() != "" {
		t.Skip("logger configured by another test")
	}
	L().Info("nobody.listens")
}
