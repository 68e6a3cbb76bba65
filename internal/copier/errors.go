package copier

import "errors"

var (
	ErrSourceUnreadable      = errors.New("source file is not readable")
	ErrNotRegularFile        = errors.New("source is not a regular file")
	ErrDestinationUnwritable = errors.New("destination file is not writable")
	ErrSameFile              = errors.New("source and destination are the same file")
)
