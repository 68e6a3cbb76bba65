package mirror

import "errors"

var ErrSourceClosed = errors.New("event source closed")
