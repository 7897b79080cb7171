package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitToFile(t *testing.T) {
	_ = Close()
	path := filepath.Join(t.TempDir(), "logs", "tabdb.log")

	if err := Init(Config{Level: LevelDebug, OutputPath: path, Format: "json"}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := Init(Config{}); err == nil {
		t.Fatalf("expected second Init to fail")
	}

	WithTable("BOOK").Debug("table rewritten", "rows", 3)
	if err := Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"table":"BOOK"`) || !strings.Contains(out, `"rows":3`) {
		t.Fatalf("unexpected log output: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]LogLevel{"debug": LevelDebug, " Warn ": LevelWarn, "ERROR": LevelError} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q): expected %v, got %v (%v)", in, want, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestGetLoggerLazyDefault(t *testing.T) {
	_ = Close()
	if GetLogger() == nil {
		t.Fatalf("expected a default logger")
	}
	_ = Close()
}
