package log

import (
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"
)

func readAll(t *testing.T, r *Reader) []Event {
	t.Helper()
	var events []Event
	for {
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			return events
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		events = append(events, ev)
	}
}

func writeEvents(t *testing.T, events ...Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plugin.mlog")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	for _, ev := range events {
		logger.Log(ev)
	}
	logger.Close()
	return path
}

func TestReaderFilters(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	path := writeEvents(t,
		Event{Timestamp: base, SessionID: "a", Direction: DirectionIn, Layer: LayerTransport, Context: "ctx-1"},
		Event{Timestamp: base.Add(time.Second), SessionID: "a", Direction: DirectionOut, Layer: LayerHost, Context: "ctx-1"},
		Event{Timestamp: base.Add(2 * time.Second), SessionID: "b", Direction: DirectionIn, Layer: LayerAction, Category: CategoryState, Context: "ctx-2"},
		Event{Timestamp: base.Add(3 * time.Second), SessionID: "b", Direction: DirectionIn, Layer: LayerHost, Category: CategoryError},
	)

	out := DirectionOut
	host := LayerHost
	state := CategoryState
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 4},
		{"session", Filter{SessionID: "b"}, 2},
		{"context", Filter{Context: "ctx-1"}, 2},
		{"direction", Filter{Direction: &out}, 1},
		{"layer", Filter{Layer: &host}, 2},
		{"category", Filter{Category: &state}, 1},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, 2},
		{"combined", Filter{SessionID: "a", Layer: &host}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader failed: %v", err)
			}
			defer r.Close()

			if got := len(readAll(t, r)); got != tt.want {
				t.Errorf("got %d events, want %d", got, tt.want)
			}
		})
	}
}

func TestReaderMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "missing.mlog"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
