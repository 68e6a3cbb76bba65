// Package mirror drives the watch loop: every event from an EventSource is
// classified and, when accepted, copied onto the configured destination file.
package mirror

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"filemirror/internal/config"
	"filemirror/internal/copier"
	"filemirror/internal/filter"
	"filemirror/internal/journal"
	"filemirror/internal/util/logger/sl"
	"filemirror/internal/watcher"
)

// EventSource is what the loop consumes. *watcher.FileWatcher satisfies it;
// tests feed synthetic events through their own channels.
type EventSource interface {
	Events() <-chan watcher.Event
	Errors() <-chan error
}

// CopyFunc performs a single copy. copier.Copy is the default.
type CopyFunc func(sourcePath, destinationFolder, targetFileName string) (copier.Result, error)

// Recorder persists copy attempts.
type Recorder interface {
	Record(e *journal.Entry) error
}

type Stats struct {
	Accepted int64
	Rejected int64
	Copied   int64
	Failed   int64
}

type Mirror struct {
	cfg     config.WatchConfig
	copy    CopyFunc
	journal Recorder
	log     *slog.Logger

	accepted atomic.Int64
	rejected atomic.Int64
	copied   atomic.Int64
	failed   atomic.Int64
}

type Option func(*Mirror)

func WithCopyFunc(fn CopyFunc) Option {
	return func(m *Mirror) {
		m.copy = fn
	}
}

func WithJournal(r Recorder) Option {
	return func(m *Mirror) {
		m.journal = r
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(m *Mirror) {
		m.log = log
	}
}

// New keeps its own copy of cfg so later changes by the caller are not seen.
func New(cfg *config.WatchConfig, opts ...Option) *Mirror {
	m := &Mirror{
		cfg:  *cfg,
		copy: copier.Copy,
		log:  slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.log = m.log.With(slog.String("component", "mirror"))

	return m
}

// StartupSync copies destination_folder/copy_file back into source_folder.
// It is a no-op when copy_file is empty. Callers run it before the watch is
// registered so the restored file is not mirrored straight back.
func (m *Mirror) StartupSync() error {
	const op = "mirror.StartupSync"

	name := m.cfg.StartupCopyFile
	if name == "" {
		m.log.Debug("startup copy disabled")
		return nil
	}

	log := m.log.With(slog.String("op", op))

	src := filepath.Join(m.cfg.DestinationFolder, name)
	res, err := m.copy(src, m.cfg.SourceFolder, name)
	m.record(res, err, true)
	if err != nil {
		log.Error("startup copy failed", slog.String("source", src), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("startup copy done",
		slog.String("source", res.Source),
		slog.String("destination", res.Destination),
		slog.Int64("bytes", res.Bytes),
	)
	return nil
}

// Run consumes source until ctx is cancelled or the event stream ends.
// Copy failures and watcher errors are logged and never stop the loop.
func (m *Mirror) Run(ctx context.Context, source EventSource) error {
	events := source.Events()
	errs := source.Errors()

	m.log.Info("watching",
		slog.String("source", m.cfg.SourceFolder),
		slog.String("destination", filepath.Join(m.cfg.DestinationFolder, m.cfg.TargetFileName)),
		slog.String("extension", m.cfg.ExtensionFilter),
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return ErrSourceClosed
			}
			m.Handle(ev)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			// TODO: decide whether repeated watch errors should end Run so a supervisor can restart the process
			m.log.Error("watch error", sl.Err(err))
		}
	}
}

// Handle filters a single event and copies it when accepted.
func (m *Mirror) Handle(ev watcher.Event) {
	verdict := filter.Classify(m.log, ev, m.cfg.ExtensionFilter)
	if !verdict.Accepted() {
		m.rejected.Add(1)
		return
	}
	if m.isDestination(verdict.Path) {
		m.rejected.Add(1)
		m.log.Debug("skipping event for destination file", slog.String("path", verdict.Path))
		return
	}
	m.accepted.Add(1)

	res, err := m.copy(verdict.Path, m.cfg.DestinationFolder, m.cfg.TargetFileName)
	m.record(res, err, false)
	if err != nil {
		m.failed.Add(1)
		m.log.Error("error copying file", slog.String("source", verdict.Path), sl.Err(err))
		return
	}
	m.copied.Add(1)

	m.log.Info("file copied",
		slog.String("source", res.Source),
		slog.String("destination", res.Destination),
		slog.Int64("bytes", res.Bytes),
		slog.String("checksum", fmt.Sprintf("%x", res.Checksum)),
	)
}

// isDestination reports whether path is the file every copy writes to.
// It happens when the destination folder sits inside the watched tree.
func (m *Mirror) isDestination(path string) bool {
	dst := filepath.Join(m.cfg.DestinationFolder, m.cfg.TargetFileName)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path) == dst
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return filepath.Clean(path) == dst
	}
	return absPath == absDst
}

func (m *Mirror) record(res copier.Result, copyErr error, startup bool) {
	if m.journal == nil {
		return
	}

	e := &journal.Entry{
		Source:      res.Source,
		Destination: res.Destination,
		Bytes:       res.Bytes,
		Checksum:    res.Checksum,
		Startup:     startup,
	}
	if copyErr != nil {
		e.Error = copyErr.Error()
	}

	if err := m.journal.Record(e); err != nil {
		m.log.Warn("failed to record copy", sl.Err(err))
	}
}

func (m *Mirror) Stats() Stats {
	return Stats{
		Accepted: m.accepted.Load(),
		Rejected: m.rejected.Load(),
		Copied:   m.copied.Load(),
		Failed:   m.failed.Load(),
	}
}
