package logging

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Not parallel: Setup mutates the process-wide logger.
func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := Setup(path)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	log.Printf("hello from test")
	cleanup()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "hello from test") {
		t.Fatalf("log file = %q, want message", b)
	}

	discard, err := Setup("")
	if err != nil {
		t.Fatalf("Setup(\"\") error = %v", err)
	}
	discard()
}

func TestSetupBadPath(t *testing.T) {
	if _, err := Setup(filepath.Join(t.TempDir(), "missing", "dir", "debug.log")); err == nil {
		t.Fatal("Setup() with unwritable path: want error")
	}
	Setup("")
}
