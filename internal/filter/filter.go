// Package filter decides which watcher events should trigger a copy.
package filter

import (
	"log/slog"
	"path/filepath"
	"strings"

	"filemirror/internal/watcher"
)

// Reason explains a Verdict.
type Reason int

const (
	Accepted Reason = iota
	RejectedKind
	RejectedExtension
)

func (r Reason) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case RejectedKind:
		return "rejected_kind"
	case RejectedExtension:
		return "rejected_extension"
	default:
		return "unknown"
	}
}

// Verdict is the outcome of Classify. Path is only set when the event is accepted.
type Verdict struct {
	Reason Reason
	Path   string
}

func (v Verdict) Accepted() bool {
	return v.Reason == Accepted
}

// Classify accepts Created and Modified events whose file name ends with
// extension (case-sensitive). An empty extension accepts every name.
// All other kinds are rejected.
func Classify(log *slog.Logger, event watcher.Event, extension string) Verdict {
	log = log.With(
		slog.String("kind", event.Kind.String()),
		slog.String("path", event.Path),
	)

	switch event.Kind {
	case watcher.Created, watcher.Modified:
	default:
		log.Debug("event ignored")
		return Verdict{Reason: RejectedKind}
	}

	if extension != "" && !strings.HasSuffix(filepath.Base(event.Path), extension) {
		log.Debug("extension does not match", slog.String("extension", extension))
		return Verdict{Reason: RejectedExtension}
	}

	log.Info("file created or modified")
	return Verdict{Reason: Accepted, Path: event.Path}
}
