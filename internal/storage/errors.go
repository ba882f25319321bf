package storage

import "errors"

var (
	// ErrSkipLine marks a line that carries no record: blank, comment, or
	// malformed. Scans treat it as "move on", never as a failure.
	ErrSkipLine = errors.New("storage: skip line")

	// ErrSeparatorInField rejects a field value that would corrupt the row
	// layout. There is no escaping mechanism; callers must keep separators
	// out of values.
	ErrSeparatorInField = errors.New("storage: field contains separator")
)

// IsSkip reports whether err means the line should be silently skipped.
func IsSkip(err error) bool {
	return errors.Is(err, ErrSkipLine)
}
