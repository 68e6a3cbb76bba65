package journal

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

const (
	CopiesBucket = "copies"
)

// Journal keeps a record of every copy attempt in a bbolt file.
type Journal struct {
	db         *bbolt.DB
	mu         sync.RWMutex
	serializer Serializer
}

type Config struct {
	Path       string
	FileMode   os.FileMode
	Options    *bbolt.Options
	Serializer Serializer
}

func NewJournal(cfg Config) (*Journal, error) {
	if cfg.Path == "" {
		return nil, ErrEmptyPath
	}
	if cfg.Serializer == nil {
		cfg.Serializer = &GobSerializer{}
	}
	if cfg.FileMode == 0 {
		cfg.FileMode = 0600
	}
	if cfg.Options == nil {
		// another process holding the file should fail startup, not hang it
		cfg.Options = &bbolt.Options{Timeout: time.Second}
	}

	db, err := bbolt.Open(cfg.Path, cfg.FileMode, cfg.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal %s: %w", cfg.Path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(CopiesBucket))
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize journal: %w", err)
	}

	return &Journal{
		db:         db,
		serializer: cfg.Serializer,
	}, nil
}

func (j *Journal) Close() error {
	if j.db == nil {
		return ErrNilDB
	}
	return j.db.Close()
}

// Record stores e under a time-ordered key. ID and Time are filled in when empty.
func (j *Journal) Record(e *Entry) error {
	if e == nil {
		return ErrNilEntry
	}

	if e.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate entry id: %w", err)
		}
		e.ID = id.String()
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	data, err := j.serializer.Serialize(e)
	if err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	return j.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(CopiesBucket))
		if bucket == nil {
			return ErrBucketNotFound
		}
		return bucket.Put([]byte(e.ID), data)
	})
}

// Count returns the number of recorded entries.
func (j *Journal) Count() (int, error) {
	var n int

	j.mu.RLock()
	defer j.mu.RUnlock()

	err := j.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(CopiesBucket))
		if bucket == nil {
			return ErrBucketNotFound
		}
		n = bucket.Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Last returns the most recent entry.
func (j *Journal) Last() (*Entry, error) {
	var e Entry

	j.mu.RLock()
	defer j.mu.RUnlock()

	err := j.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(CopiesBucket))
		if bucket == nil {
			return ErrBucketNotFound
		}

		k, v := bucket.Cursor().Last()
		if k == nil {
			return ErrEntryNotFound
		}
		return j.serializer.Deserialize(v, &e)
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}
