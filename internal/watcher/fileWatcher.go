package watcher

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"filemirror/internal/util/logger/sl"
)

// FileWatcher turns raw fsnotify notifications under a directory tree into
// a stream of debounced, classified Events for a single consumer.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	events    chan Event
	errors    chan error
	config    Config
	logger    *slog.Logger
	debouncer *Debouncer
	metrics   *WatcherMetrics

	pendingMu sync.Mutex
	pending   map[string]Event

	// emitMu guards events against being closed while a debounce callback sends.
	emitMu sync.RWMutex
	closed bool

	stopChan chan struct{}
	wg       sync.WaitGroup
	mu       sync.RWMutex
}

func NewFileWatcher(config Config) (*FileWatcher, error) {
	if config.DebounceDuration == 0 {
		config.DebounceDuration = DefaultDebounceDuration
	}
	if config.BufferSize == 0 {
		config.BufferSize = DefaultBufferSize
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher:   watcher,
		events:    make(chan Event, config.BufferSize),
		errors:    make(chan error, config.BufferSize),
		config:    config,
		logger:    config.Logger.With(slog.String("component", "watcher")),
		debouncer: NewDebouncer(config.DebounceDuration),
		metrics:   NewWatcherMetrics(),
		pending:   make(map[string]Event),
		stopChan:  make(chan struct{}),
	}

	fw.wg.Add(1)
	go fw.run()

	return fw, nil
}

// Watch registers path and, when it is a directory, every directory below it.
func (fw *FileWatcher) Watch(path string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.isClosed() {
		return ErrWatcherClosed
	}

	// Проверяем существование пути
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}

	if info.IsDir() {
		return fw.addTree(path)
	}

	if err := fw.watcher.Add(path); err != nil {
		return fmt.Errorf("failed to watch file %s: %w", path, err)
	}

	return nil
}

func (fw *FileWatcher) addTree(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if err := fw.watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", path, err)
			}
			fw.metrics.RecordDirectoryAdded()
		}
		return nil
	})
}

func (fw *FileWatcher) run() {
	defer fw.wg.Done()
	defer close(fw.errors)

	for {
		select {
		case <-fw.stopChan:
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.metrics.RecordRawEvent()
			fw.processEvent(event)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.handleError(err)
		}
	}
}

func (fw *FileWatcher) processEvent(event fsnotify.Event) {
	kind := kindOf(event.Op)

	// new directories join the recursive watch as soon as they appear
	if kind == Created {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			fw.mu.Lock()
			if err := fw.addTree(event.Name); err != nil {
				fw.handleError(fmt.Errorf("failed to watch new directory %s: %w", event.Name, err))
			}
			fw.mu.Unlock()
		}
	}

	fw.pendingMu.Lock()
	prev, exists := fw.pending[event.Name]
	if exists {
		kind = merge(prev.Kind, kind)
		fw.metrics.RecordCoalesced()
	}
	fw.pending[event.Name] = Event{
		Kind:      kind,
		Path:      event.Name,
		Timestamp: time.Now(),
	}
	fw.pendingMu.Unlock()

	fw.debouncer.Debounce(event.Name, func() {
		fw.flush(event.Name)
	})
}

func (fw *FileWatcher) flush(path string) {
	fw.pendingMu.Lock()
	event, ok := fw.pending[path]
	delete(fw.pending, path)
	fw.pendingMu.Unlock()

	if !ok {
		return
	}

	fw.emitMu.RLock()
	defer fw.emitMu.RUnlock()

	if fw.closed {
		return
	}

	select {
	case fw.events <- event:
		fw.metrics.RecordEmitted()
	case <-fw.stopChan:
	}
}

func (fw *FileWatcher) handleError(err error) {
	fw.metrics.RecordError()

	select {
	case fw.errors <- err:
	default:
		fw.logger.Warn("error buffer full, dropping error", sl.Err(err))
	}
}

func (fw *FileWatcher) isClosed() bool {
	select {
	case <-fw.stopChan:
		return true
	default:
		return false
	}
}

// Close stops the watcher. Events still inside their debounce window are
// dropped, and the Events channel is closed once no callback can send on it.
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	if fw.isClosed() {
		fw.mu.Unlock()
		return nil
	}
	close(fw.stopChan)
	fw.mu.Unlock()

	fw.debouncer.Stop()
	fw.wg.Wait()

	fw.emitMu.Lock()
	fw.closed = true
	close(fw.events)
	fw.emitMu.Unlock()

	if err := fw.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	return nil
}

// Events delivers one Event per path per quiet debounce window.
func (fw *FileWatcher) Events() <-chan Event {
	return fw.events
}

func (fw *FileWatcher) Errors() <-chan error {
	return fw.errors
}

func (fw *FileWatcher) Metrics() *WatcherMetrics {
	return fw.metrics
}
