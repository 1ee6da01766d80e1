package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRequiresRoot(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatalf("expected error for empty root")
	}
	if _, err := New(Options{Root: "   "}); err == nil {
		t.Fatalf("expected error for blank root")
	}
}

func TestReadLines(t *testing.T) {
	dir := t.TempDir()
	rel := "2025-08-20/ICEDIRECT/Index/AUDforUS/PriceGeneration_AUDforUS_EarlyRun.log"
	full := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	body := "first line\r\nsecond line\nthird line\n"
	if err := os.WriteFile(full, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	src, err := New(Options{Root: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	lines, err := src.ReadLines(context.Background(), rel)
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("len = %d, want 3", len(lines))
	}
	if lines[0].Pos != 1 || lines[0].Text != "first line" {
		t.Fatalf("line 1 = %+v", lines[0])
	}
	if lines[2].Pos != 3 || lines[2].Text != "third line" {
		t.Fatalf("line 3 = %+v", lines[2])
	}
}

func TestReadLinesMissingFileIsZeroLines(t *testing.T) {
	src, err := New(Options{Root: t.TempDir()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	lines, err := src.ReadLines(context.Background(), "nope/none.log")
	if err != nil {
		t.Fatalf("missing file must not error, got %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("len = %d, want 0", len(lines))
	}
}

func TestReadLinesUnreadableIsZeroLines(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "run.log"), []byte("x\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	src, err := New(Options{Root: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// opening through a regular file fails with something other than ENOENT
	lines, err := src.ReadLines(context.Background(), "run.log/nested.log")
	if err != nil {
		t.Fatalf("unreadable file must not error, got %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("len = %d, want 0", len(lines))
	}

	// a directory opens fine but fails on read
	if err := os.MkdirAll(filepath.Join(dir, "actually-a-dir.log"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	lines, err = src.ReadLines(context.Background(), "actually-a-dir.log")
	if err != nil {
		t.Fatalf("unreadable file must not error, got %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("len = %d, want 0", len(lines))
	}
}

func TestReadLinesHonoursContext(t *testing.T) {
	src, err := New(Options{Root: t.TempDir()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.ReadLines(ctx, "whatever.log"); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestLink(t *testing.T) {
	src, err := New(Options{Root: "/mnt/logs"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := src.Link("a/b/c.log"); got != "/mnt/logs/a/b/c.log" {
		t.Fatalf("Link = %q", got)
	}

	unc, err := New(Options{Root: "/mnt/logs", LinkBase: `\\nas01\prices`})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := unc.Link("a/b/c.log")
	if !strings.HasPrefix(got, `\\nas01\prices\`) || strings.Contains(got, "/") {
		t.Fatalf("UNC Link = %q", got)
	}
}
