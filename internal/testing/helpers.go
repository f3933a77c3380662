// Package testing holds helpers shared by the package tests: loggers,
// per-test afs locations and fixture trees.
package testing

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/viant/afs"
	"golang.org/x/tools/txtar"
)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CaptureLogger returns a text logger at level and the buffer it writes to.
func CaptureLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})), &buf
}

// MemURL returns a mem:// location private to the running test. The
// in-memory store is process wide, so tests must not share locations.
func MemURL(t *testing.T, elems ...string) string {
	t.Helper()
	parts := append([]string{"mem://localhost", strings.ReplaceAll(t.Name(), "/", "_")}, elems...)
	return strings.Join(parts, "/")
}

// Upload stores content at a MemURL and returns that URL.
func Upload(t *testing.T, fs afs.Service, name, content string) string {
	t.Helper()
	URL := MemURL(t, "in", name)
	if err := fs.Upload(context.Background(), URL, 0o644, strings.NewReader(content)); err != nil {
		t.Fatalf("upload %s: %v", URL, err)
	}
	return URL
}

// WriteArchive expands a txtar archive into a fresh temporary directory and
// returns the directory.
func WriteArchive(t *testing.T, archive string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range txtar.Parse([]byte(archive)).Files {
		p := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, f.Data, 0o644); err != nil {
			t.Fatalf("write %s: %v", f.Name, err)
		}
	}
	return dir
}
