package log

import (
	"fmt"
	"io"
	"sync"
)

// SourceDumper receives rendered sources verbatim, e.g. for --dry-run or a
// dump file.
type SourceDumper interface {
	Dump(path string, content []byte)
}

type sourceDumper struct {
	w  io.Writer
	mu sync.Mutex
}

// NewDump creates a new SourceDumper. If writer is nil, returns a no-op dumper.
func NewDump(w io.Writer) SourceDumper {
	return &sourceDumper{w: w}
}

// Dump writes a banner line with the path and size followed by the content.
func (d *sourceDumper) Dump(path string, content []byte) {
	if d.w == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	_, _ = fmt.Fprintf(d.w, "==> %s (%d bytes) <==\n", path, len(content))
	_, _ = d.w.Write(content)
	if len(content) > 0 && content[len(content)-1] != '\n' {
		_, _ = d.w.Write([]byte{'\n'})
	}
}
