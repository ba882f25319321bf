package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// RewriteAction tells the rewriter what to do with one record line.
type RewriteAction int

const (
	ActionKeep RewriteAction = iota
	ActionReplace
	ActionDrop
)

// LineTransform maps an original record line to its replacement. It is only
// called for record lines; comments and blanks always pass through.
type LineTransform func(line string) (string, RewriteAction)

// renameFile is swapped out by tests to simulate a crash between the
// temp-file write and the final rename.
var renameFile = os.Rename

// Rewrite applies transform to every record line of the file at path and
// atomically replaces the file with the result. The transformed content is
// staged in a temp file in the same directory and renamed over the
// original, so a failure before the rename leaves the original untouched.
// It reports whether any line actually changed; an unchanged file is never
// rewritten. A missing file is an empty table: no change, no error.
func Rewrite(path string, transform LineTransform) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("rewrite %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	out := make([]string, 0, len(lines))
	changed := false
	for _, line := range lines {
		if !IsRecordLine(line) {
			out = append(out, line)
			continue
		}
		replacement, action := transform(line)
		switch action {
		case ActionReplace:
			if replacement != line {
				changed = true
			}
			out = append(out, replacement)
		case ActionDrop:
			changed = true
		default:
			out = append(out, line)
		}
	}
	if !changed {
		return false, nil
	}
	if err := replaceFile(path, []byte(strings.Join(out, "\n"))); err != nil {
		return false, fmt.Errorf("rewrite %s: %w", path, err)
	}
	return true, nil
}

// replaceFile writes content to a temp file next to path, syncs it and
// renames it over the original.
func replaceFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf("%s.%s.tmp", filepath.Base(path), uuid.NewString()))

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := renameFile(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
