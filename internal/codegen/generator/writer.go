package generator

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/Alia5/launchgen/internal/codegen/launch"
)

// Writer stores rendered sources under a base URL (a local directory or
// any afs-supported location).
type Writer struct {
	fs      afs.Service
	baseURL string
	logger  *slog.Logger
}

func NewWriter(fs afs.Service, baseURL string, logger *slog.Logger) *Writer {
	return &Writer{fs: fs, baseURL: baseURL, logger: logger}
}

// URL returns where a source with the given relative path is written.
func (w *Writer) URL(relPath string) string {
	return url.Join(w.baseURL, relPath)
}

// WriteAll writes every source, skipping files whose content is already
// up to date so reruns leave timestamps untouched.
func (w *Writer) WriteAll(ctx context.Context, sources []launch.Source) error {
	for _, src := range sources {
		if err := w.Write(ctx, src); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) Write(ctx context.Context, src launch.Source) error {
	URL := w.URL(src.Path)
	exists, err := w.fs.Exists(ctx, URL)
	if err != nil {
		return fmt.Errorf("stat %s: %w", URL, err)
	}
	if exists {
		current, err := w.fs.DownloadWithURL(ctx, URL)
		if err == nil && bytes.Equal(current, src.Content) {
			w.logger.Debug("Generated file unchanged", "url", URL)
			return nil
		}
	}
	if err := w.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(src.Content)); err != nil {
		return fmt.Errorf("write %s: %w", URL, err)
	}
	w.logger.Info("Wrote generated file", "url", URL, "bytes", len(src.Content))
	return nil
}
