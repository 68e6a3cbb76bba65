package journal

import "errors"

var (
	ErrEntryNotFound  = errors.New("journal entry not found")
	ErrBucketNotFound = errors.New("bucket not found")
	ErrNilDB          = errors.New("database connection is nil")
	ErrNilEntry       = errors.New("journal entry is nil")
	ErrEmptyPath      = errors.New("journal path is empty")
)
