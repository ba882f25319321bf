package repositories

import "errors"

var (
	// ErrNotFound distinguishes "no such record" from a storage failure.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate rejects writes that would violate a uniqueness rule the
	// file format cannot enforce itself (e.g. username within a role table).
	ErrDuplicate = errors.New("duplicate record")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
