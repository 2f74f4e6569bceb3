package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWithoutPathDiscards(t *testing.T) {
	logger, closer, err := New("", slog.LevelDebug)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	defer closer.Close()
	if logger.Enabled(t.Context(), slog.LevelError) {
		t.Fatal("discard logger must not be enabled")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cycletimer.log")
	logger, closer, err := New(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("cycle started", "cycle", "c1")
	logger.Debug("hidden")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(raw)
	if !strings.Contains(out, "cycle started") || !strings.Contains(out, "cycle=c1") {
		t.Fatalf("unexpected log output: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record leaked at info level: %q", out)
	}
}

func TestNewWithWriterAndParseLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, ParseLevel("WARN"))
	logger.Info("skip")
	logger.Warn("keep")
	if strings.Contains(buf.String(), "skip") || !strings.Contains(buf.String(), "keep") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
	if ParseLevel("nonsense") != slog.LevelInfo || ParseLevel("debug") != slog.LevelDebug {
		t.Fatal("unexpected level parsing")
	}
}
