package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/cycletimer/internal/storage"
)

func TestLoadConfigLayersFileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("history_db: from-file.db\npoller_buffer: 16\nlog_level: warn\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CYCLETIMER_POLLER_BUFFER", "32")

	cfg, err := loadConfig(&rootFlags{configPath: cfgPath, logLevel: "debug"})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HistoryDBPath != "from-file.db" {
		t.Fatalf("expected file value, got %q", cfg.HistoryDBPath)
	}
	if cfg.PollerBuffer != 32 {
		t.Fatalf("env must override file, got %d", cfg.PollerBuffer)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("flag must override file, got %q", cfg.LogLevel)
	}

	cfg, err = loadConfig(&rootFlags{configPath: cfgPath, historyDB: "flag.db"})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HistoryDBPath != "flag.db" {
		t.Fatalf("flag must override file, got %q", cfg.HistoryDBPath)
	}
}

func TestHistoryCommandListsJournal(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	repo, err := storage.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	start := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	finished := start.Add(25 * time.Minute)
	if err := repo.CreateCycle(context.Background(), storage.CycleRecord{
		ID: "c1", Task: "Projeto 1", MinutesAmount: 25, StartTime: start,
		Status: "completed", FinishedAt: &finished, CreatedAt: start,
	}); err != nil {
		t.Fatalf("seed journal: %v", err)
	}
	_ = repo.Close()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"history", "--history-db", dbPath, "--config", filepath.Join(t.TempDir(), "none.yaml")})
	if err := root.Execute(); err != nil {
		t.Fatalf("history: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Projeto 1") || !strings.Contains(got, "25min") || !strings.Contains(got, "completed") {
		t.Fatalf("unexpected history output: %q", got)
	}
}

func TestHistoryCommandRequiresDB(t *testing.T) {
	t.Setenv("CYCLETIMER_HISTORY_DB", "")
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"history", "--config", filepath.Join(t.TempDir(), "none.yaml")})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "--history-db") {
		t.Fatalf("expected missing db error, got %v", err)
	}
}

func TestStartCommandRejectsInvalidInput(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"start", "--task", "banana", "--minutes", "3", "--config", filepath.Join(t.TempDir(), "none.yaml")})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "minutes must be at least 5") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPrintHistoryEmpty(t *testing.T) {
	var out bytes.Buffer
	if err := printHistory(&out, nil); err != nil {
		t.Fatalf("print: %v", err)
	}
	if strings.TrimSpace(out.String()) != "no cycles" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}
