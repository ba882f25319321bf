package storage

import (
	"fmt"
	"strings"
)

// CommentMarker starts header and comment lines; such lines are never
// decoded and pass through rewrites untouched.
const CommentMarker = "#"

const (
	SeparatorComma = ","
	SeparatorPipe  = "|"
)

// Codec converts one record to and from the fields of one delimited line.
// Arity is the minimum field count a line must split into to be considered a
// record at all; shorter lines are skipped, not rejected.
type Codec[T any] struct {
	Separator string
	Arity     int
	Encode    func(T) []string
	Decode    func([]string) (T, error)
}

// EncodeLine renders a record as one line. It fails if any field contains
// the separator or a line break, since neither can be escaped.
func (c Codec[T]) EncodeLine(rec T) (string, error) {
	fields := c.Encode(rec)
	for i, f := range fields {
		if strings.Contains(f, c.Separator) {
			return "", fmt.Errorf("%w: field %d %q", ErrSeparatorInField, i, f)
		}
		if strings.ContainsAny(f, "\r\n") {
			return "", fmt.Errorf("%w: field %d contains line break", ErrSeparatorInField, i)
		}
	}
	return strings.Join(fields, c.Separator), nil
}

// DecodeLine parses one line. Blank lines, comment lines, lines with too few
// fields and lines whose values fail to parse all return ErrSkipLine so a
// corrupt row never aborts a whole-table scan.
func (c Codec[T]) DecodeLine(line string) (T, error) {
	var zero T
	if !IsRecordLine(line) {
		return zero, ErrSkipLine
	}
	fields := strings.Split(line, c.Separator)
	if len(fields) < c.Arity {
		return zero, fmt.Errorf("%w: %d of %d fields", ErrSkipLine, len(fields), c.Arity)
	}
	rec, err := c.Decode(fields)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrSkipLine, err)
	}
	return rec, nil
}

// IsRecordLine reports whether a line may carry a record: non-blank and not
// a comment.
func IsRecordLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && !strings.HasPrefix(trimmed, CommentMarker)
}
