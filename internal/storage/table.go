package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Table is one entity's flat file of delimited records. It combines the
// codec with append/scan primitives and the atomic rewriter, and serializes
// every operation behind a per-table mutex so read-modify-write sequences
// cannot interleave within the process.
type Table[T any] struct {
	mu     sync.Mutex
	path   string
	name   string
	header string
	codec  Codec[T]
	logger *slog.Logger
}

// NewTable creates a handle for the table file at path. The file itself is
// created lazily, with header as its first comment line, on first append.
func NewTable[T any](path, name, header string, codec Codec[T], logger *slog.Logger) *Table[T] {
	return &Table[T]{path: path, name: name, header: header, codec: codec, logger: logger}
}

func (t *Table[T]) Path() string { return t.path }
func (t *Table[T]) Name() string { return t.name }

// Scan decodes every valid record line. A missing file is an empty table.
// Malformed lines are skipped and counted, never fatal.
func (t *Table[T]) Scan(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scanLocked()
}

func (t *Table[T]) scanLocked() ([]T, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan %s: %w", t.name, err)
	}

	var records []T
	skipped := 0
	for _, line := range splitLines(string(data)) {
		rec, err := t.codec.DecodeLine(line)
		if err != nil {
			if IsRecordLine(line) {
				skipped++
			}
			continue
		}
		records = append(records, rec)
	}
	if skipped > 0 {
		t.logger.Warn("skipped malformed lines during scan",
			"table", t.name,
			"skipped", skipped)
	}
	return records, nil
}

// Append encodes one record and adds it as the last line of the file,
// creating the file with its header on first use.
func (t *Table[T]) Append(ctx context.Context, rec T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	line, err := t.codec.EncodeLine(rec)
	if err != nil {
		return fmt.Errorf("append %s: %w", t.name, err)
	}

	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return fmt.Errorf("append %s: %w", t.name, err)
	}
	f, err := os.OpenFile(t.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("append %s: %w", t.name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("append %s: %w", t.name, err)
	}
	if info.Size() == 0 && t.header != "" {
		if _, err := fmt.Fprintf(f, "%s %s\n", CommentMarker, t.header); err != nil {
			return fmt.Errorf("append %s: %w", t.name, err)
		}
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("append %s: %w", t.name, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("append %s: %w", t.name, err)
	}
	return nil
}

// Update atomically rewrites the file, applying apply to every record that
// matches. It reports whether anything changed.
func (t *Table[T]) Update(ctx context.Context, match func(T) bool, apply func(T) T) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	var encodeErr error
	changed, err := Rewrite(t.path, func(line string) (string, RewriteAction) {
		rec, err := t.codec.DecodeLine(line)
		if err != nil || !match(rec) {
			return line, ActionKeep
		}
		out, err := t.codec.EncodeLine(apply(rec))
		if err != nil {
			encodeErr = err
			return line, ActionKeep
		}
		return out, ActionReplace
	})
	if err != nil {
		return false, fmt.Errorf("update %s: %w", t.name, err)
	}
	if encodeErr != nil {
		return changed, fmt.Errorf("update %s: %w", t.name, encodeErr)
	}
	return changed, nil
}

// Delete atomically drops every matching record. Deleting records that do
// not exist is a no-change success, so the operation is idempotent.
func (t *Table[T]) Delete(ctx context.Context, match func(T) bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	changed, err := Rewrite(t.path, func(line string) (string, RewriteAction) {
		rec, err := t.codec.DecodeLine(line)
		if err != nil || !match(rec) {
			return line, ActionKeep
		}
		return "", ActionDrop
	})
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", t.name, err)
	}
	return changed, nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			line := s[start:i]
			if len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
			}
			lines = append(lines, line)
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
