package gen

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dave/jennifer/jen"
)

// Writer renders Jennifer files under the output root. It is safe for
// concurrent use; every path may be written at most once.
type Writer struct {
	out OutputConfig

	mu      sync.Mutex
	written map[string]string // path => origin
	metrics WriterMetrics
}

// WriterMetrics tracks generation performance.
type WriterMetrics struct {
	FilesGenerated int
	// FilesUnchanged counts files whose content on disk was already up to
	// date and that were left untouched.
	FilesUnchanged int
	// FilesRemoved counts generated files of earlier runs deleted by Prune.
	FilesRemoved int
	TotalBytes   int64
	RenderTime     time.Duration
	WriteTime      time.Duration
}

// NewWriter creates a writer for the output settings. Paths passed to Write
// are relative to out.Root.
func NewWriter(out OutputConfig) *Writer {
	return &Writer{
		out:     out,
		written: make(map[string]string),
	}
}

// Metrics returns a copy of the generation metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// Write renders f to the slash-separated path rel. Writing the same path
// twice is an InternalError.
func (w *Writer) Write(f *jen.File, rel, origin string) error {
	if err := w.claim(rel, origin); err != nil {
		return err
	}

	start := time.Now()
	var buf bytes.Buffer
	// Jennifer renders with correct imports and formatting
	if err := f.Render(&buf); err != nil {
		return NewGenerationError("render", rel, origin, err)
	}
	rendered := time.Since(start)

	start = time.Now()
	full := filepath.Join(w.out.Root, filepath.FromSlash(rel))
	unchanged, err := sameContent(full, buf.Bytes())
	if err != nil {
		return NewGenerationError("write", rel, "read existing file", err)
	}
	if !unchanged {
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return NewGenerationError("write", rel, "create directory", err)
		}
		if err := os.WriteFile(full, buf.Bytes(), 0o644); err != nil {
			return NewGenerationError("write", rel, "", err)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if unchanged {
		w.metrics.FilesUnchanged++
	} else {
		w.metrics.FilesGenerated++
	}
	w.metrics.TotalBytes += int64(buf.Len())
	w.metrics.RenderTime += rendered
	w.metrics.WriteTime += time.Since(start)
	return nil
}

// Prune deletes the .go files in the root, type and fragment package
// directories that start with the generated header and were not written by
// this writer. It returns the slash-separated paths it removed. Nothing is
// removed when the header is empty.
func (w *Writer) Prune() ([]string, error) {
	marker := headerMarker(w.out.Header)
	if marker == "" {
		return nil, nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	var removed []string
	for _, b := range []Bucket{BucketRoot, BucketType, BucketFragment} {
		dir := path.Join(w.out.Qualifier, string(b))
		entries, err := os.ReadDir(filepath.Join(w.out.Root, filepath.FromSlash(dir)))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return removed, NewGenerationError("prune", dir, "read directory", err)
		}
		for _, entry := range entries {
			rel := path.Join(dir, entry.Name())
			if entry.IsDir() || path.Ext(rel) != ".go" {
				continue
			}
			if _, ok := w.written[rel]; ok {
				continue
			}
			full := filepath.Join(w.out.Root, filepath.FromSlash(rel))
			generated, err := hasPrefix(full, marker)
			if err != nil {
				return removed, NewGenerationError("prune", rel, "read file", err)
			}
			if !generated {
				continue
			}
			if err := os.Remove(full); err != nil {
				return removed, NewGenerationError("prune", rel, "remove file", err)
			}
			removed = append(removed, rel)
			w.metrics.FilesRemoved++
		}
	}
	slices.Sort(removed)
	return removed, nil
}

// headerMarker returns the text jennifer renders for header up to the end of
// its first line.
func headerMarker(header string) string {
	first, _, multiline := strings.Cut(header, "\n")
	switch {
	case header == "":
		return ""
	case strings.HasPrefix(header, "//"), strings.HasPrefix(header, "/*"):
		return first + "\n"
	case multiline:
		return "/*\n" + first + "\n"
	default:
		return "// " + header + "\n"
	}
}

func hasPrefix(name, prefix string) (bool, error) {
	f, err := os.Open(name)
	if err != nil {
		return false, err
	}
	defer f.Close()
	buf := make([]byte, len(prefix))
	if _, err := io.ReadFull(f, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	return string(buf) == prefix, nil
}

func (w *Writer) claim(rel, origin string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if prev, ok := w.written[rel]; ok {
		return NewInternalError("writer", "path "+rel+" written by "+prev+" and "+origin, nil)
	}
	w.written[rel] = origin
	return nil
}

func sameContent(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return bytes.Equal(existing, content), nil
}
