package filter

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"filemirror/internal/watcher"
)

func TestClassify(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name      string
		event     watcher.Event
		extension string
		want      Verdict
	}{
		{
			name:      "created with matching extension",
			event:     watcher.Event{Kind: watcher.Created, Path: "/saves/slot1.sav"},
			extension: ".sav",
			want:      Verdict{Reason: Accepted, Path: "/saves/slot1.sav"},
		},
		{
			name:      "created with other extension",
			event:     watcher.Event{Kind: watcher.Created, Path: "/saves/slot1.txt"},
			extension: ".sav",
			want:      Verdict{Reason: RejectedExtension},
		},
		{
			name:      "modified with matching extension",
			event:     watcher.Event{Kind: watcher.Modified, Path: "/saves/deep/slot2.sav"},
			extension: ".sav",
			want:      Verdict{Reason: Accepted, Path: "/saves/deep/slot2.sav"},
		},
		{
			name:      "extension match is case sensitive",
			event:     watcher.Event{Kind: watcher.Modified, Path: "/saves/slot1.SAV"},
			extension: ".sav",
			want:      Verdict{Reason: RejectedExtension},
		},
		{
			name:      "only the file name is matched",
			event:     watcher.Event{Kind: watcher.Created, Path: "/saves.sav/readme"},
			extension: ".sav",
			want:      Verdict{Reason: RejectedExtension},
		},
		{
			name:  "no filter accepts created",
			event: watcher.Event{Kind: watcher.Created, Path: "/saves/anything"},
			want:  Verdict{Reason: Accepted, Path: "/saves/anything"},
		},
		{
			name:  "no filter accepts modified",
			event: watcher.Event{Kind: watcher.Modified, Path: "/saves/notes.txt"},
			want:  Verdict{Reason: Accepted, Path: "/saves/notes.txt"},
		},
		{
			name:  "removed",
			event: watcher.Event{Kind: watcher.Removed, Path: "/saves/slot1.sav"},
			want:  Verdict{Reason: RejectedKind},
		},
		{
			name:  "attributes changed",
			event: watcher.Event{Kind: watcher.AttributesChanged, Path: "/saves/slot1.sav"},
			want:  Verdict{Reason: RejectedKind},
		},
		{
			name:      "renamed",
			event:     watcher.Event{Kind: watcher.Renamed, Path: "/saves/slot1.sav"},
			extension: ".sav",
			want:      Verdict{Reason: RejectedKind},
		},
		{
			name:  "other",
			event: watcher.Event{Kind: watcher.Other},
			want:  Verdict{Reason: RejectedKind},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(log, tt.event, tt.extension)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Reason == Accepted, got.Accepted())
		})
	}
}

func TestReason_String(t *testing.T) {
	assert.Equal(t, "accepted", Accepted.String())
	assert.Equal(t, "rejected_kind", RejectedKind.String())
	assert.Equal(t, "rejected_extension", RejectedExtension.String())
}
