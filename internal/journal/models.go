package journal

import (
	"bytes"
	"encoding/gob"
	"time"
)

// Entry is one copy attempt. Error is empty when the copy succeeded.
type Entry struct {
	ID          string
	Time        time.Time
	Source      string
	Destination string
	Bytes       int64
	Checksum    [32]byte
	Error       string
	Startup     bool
}

func (e *Entry) Failed() bool {
	return e.Error != ""
}

// Serializer предоставляет интерфейс для сериализации/десериализации данных
type Serializer interface {
	Serialize(v interface{}) ([]byte, error)
	Deserialize(data []byte, v interface{}) error
}

// GobSerializer реализует Serializer используя encoding/gob
type GobSerializer struct{}

func (s *GobSerializer) Serialize(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *GobSerializer) Deserialize(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
