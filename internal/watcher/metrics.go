package watcher

import (
	"sync/atomic"
	"time"
)

type WatcherMetrics struct {
	rawEvents     atomic.Int64
	emitted       atomic.Int64
	coalesced     atomic.Int64
	errors        atomic.Int64
	dirsWatched   atomic.Int64
	lastEventTime atomic.Int64
}

func NewWatcherMetrics() *WatcherMetrics {
	return &WatcherMetrics{}
}

func (m *WatcherMetrics) RecordRawEvent() {
	m.rawEvents.Add(1)
	m.lastEventTime.Store(time.Now().UnixNano())
}

func (m *WatcherMetrics) RecordCoalesced() {
	m.coalesced.Add(1)
}

func (m *WatcherMetrics) RecordEmitted() {
	m.emitted.Add(1)
}

func (m *WatcherMetrics) RecordError() {
	m.errors.Add(1)
}

func (m *WatcherMetrics) RecordDirectoryAdded() {
	m.dirsWatched.Add(1)
}

func (m *WatcherMetrics) GetStats() map[string]interface{} {
	var last time.Time
	if ns := m.lastEventTime.Load(); ns != 0 {
		last = time.Unix(0, ns)
	}

	return map[string]interface{}{
		"raw_events":      m.rawEvents.Load(),
		"events_emitted":  m.emitted.Load(),
		"events_merged":   m.coalesced.Load(),
		"errors":          m.errors.Load(),
		"dirs_watched":    m.dirsWatched.Load(),
		"last_event_time": last,
	}
}
