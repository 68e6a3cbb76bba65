package watcher

import (
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Kind is the classified type of a filesystem change.
type Kind int

const (
	Other Kind = iota
	Created
	Modified
	Removed
	AttributesChanged
	Renamed
)

func (k Kind) String() string {
	switch k {
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Removed:
		return "removed"
	case AttributesChanged:
		return "attributes_changed"
	case Renamed:
		return "renamed"
	default:
		return "other"
	}
}

// Event is one coalesced filesystem change.
//
// For Renamed, Path is the name the file had before the rename. fsnotify
// does not pair the two halves of a rename; the new name shows up as its own
// Created event.
type Event struct {
	Kind      Kind
	Path      string
	Timestamp time.Time
}

// Config содержит настройки для FileWatcher
type Config struct {
	DebounceDuration time.Duration
	BufferSize       int
	Logger           *slog.Logger
}

func kindOf(op fsnotify.Op) Kind {
	switch {
	case op.Has(fsnotify.Create):
		return Created
	case op.Has(fsnotify.Write):
		return Modified
	case op.Has(fsnotify.Remove):
		return Removed
	case op.Has(fsnotify.Rename):
		return Renamed
	case op.Has(fsnotify.Chmod):
		return AttributesChanged
	default:
		return Other
	}
}

// merge folds a newer raw kind into the kind already pending for a path.
func merge(prev, next Kind) Kind {
	switch next {
	case Removed, Renamed:
		return next
	case AttributesChanged, Other:
		if prev == Created || prev == Modified {
			return prev
		}
	case Modified:
		if prev == Created {
			return Created
		}
	}
	return next
}
