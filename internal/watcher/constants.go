package watcher

import (
	"time"
)

const (
	DefaultDebounceDuration = time.Second
	DefaultBufferSize       = 100
)
