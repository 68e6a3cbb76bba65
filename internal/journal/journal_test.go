package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

type testHelper struct {
	journal *Journal
	dir     string
}

func setupTest(t *testing.T) *testHelper {
	t.Helper()

	dir := t.TempDir()

	j, err := NewJournal(Config{
		Path:       filepath.Join(dir, "journal.db"),
		Serializer: &GobSerializer{},
	})
	require.NoError(t, err)
	require.NotNil(t, j)

	t.Cleanup(func() {
		j.Close()
	})

	return &testHelper{
		journal: j,
		dir:     dir,
	}
}

func createTestEntry(src string, data []byte) *Entry {
	return &Entry{
		Source:      src,
		Destination: "/backup/latest.sav",
		Bytes:       int64(len(data)),
		Checksum:    blake2b.Sum256(data),
	}
}

func TestNewJournal_EmptyPath(t *testing.T) {
	_, err := NewJournal(Config{})
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestJournal_Record(t *testing.T) {
	h := setupTest(t)

	tests := []struct {
		name        string
		input       *Entry
		shouldError bool
	}{
		{
			name:  "Valid entry",
			input: createTestEntry("/saves/slot1.sav", []byte("slot one")),
		},
		{
			name:        "Nil entry",
			input:       nil,
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.journal.Record(tt.input)
			if tt.shouldError {
				assert.ErrorIs(t, err, ErrNilEntry)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, tt.input.ID)
			assert.False(t, tt.input.Time.IsZero())
		})
	}
}

func TestJournal_LastIsNewest(t *testing.T) {
	h := setupTest(t)

	sources := []string{"/saves/a.sav", "/saves/b.sav", "/saves/c.sav"}
	for i, src := range sources {
		require.NoError(t, h.journal.Record(createTestEntry(src, []byte(src))))

		n, err := h.journal.Count()
		require.NoError(t, err)
		assert.Equal(t, i+1, n)

		last, err := h.journal.Last()
		require.NoError(t, err)
		assert.Equal(t, src, last.Source)
		assert.Equal(t, blake2b.Sum256([]byte(src)), last.Checksum)
	}
}

func TestJournal_Last(t *testing.T) {
	h := setupTest(t)

	_, err := h.journal.Last()
	assert.ErrorIs(t, err, ErrEntryNotFound)

	require.NoError(t, h.journal.Record(createTestEntry("/saves/old.sav", []byte("old"))))

	failed := createTestEntry("/saves/new.sav", nil)
	failed.Error = "permission denied"
	failed.Startup = true
	require.NoError(t, h.journal.Record(failed))

	last, err := h.journal.Last()
	require.NoError(t, err)
	assert.Equal(t, "/saves/new.sav", last.Source)
	assert.True(t, last.Failed())
	assert.True(t, last.Startup)
}

func TestJournal_KeepsExplicitIDAndTime(t *testing.T) {
	h := setupTest(t)

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	e := createTestEntry("/saves/a.sav", []byte("a"))
	e.ID = "fixed-id"
	e.Time = at

	require.NoError(t, h.journal.Record(e))

	last, err := h.journal.Last()
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", last.ID)
	assert.True(t, at.Equal(last.Time))
}

func TestJournal_Reopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.db")

	j, err := NewJournal(Config{Path: path})
	require.NoError(t, err)
	require.NoError(t, j.Record(createTestEntry("/saves/a.sav", []byte("a"))))
	require.NoError(t, j.Close())

	j, err = NewJournal(Config{Path: path})
	require.NoError(t, err)
	defer j.Close()

	n, err := j.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
