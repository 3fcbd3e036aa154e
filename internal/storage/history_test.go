package storage

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func newTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := NewHistory(filepath.Join(t.TempDir(), "history.json"))
	if err != nil {
		t.Fatalf("NewHistory: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func TestHistoryAppendAndFetch(t *testing.T) {
	h := newTestHistory(t)

	now := time.Now()
	for _, title := range []string{"one", "two", "three"} {
		err := h.Append("guild-1", PlayedTrack{Title: title, Author: "someone", PlayedAt: now})
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	tracks, err := h.Fetch("guild-1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(tracks) != 3 {
		t.Fatalf("got %d tracks, want 3", len(tracks))
	}
	if tracks[0].Title != "one" || tracks[2].Title != "three" {
		t.Errorf("unexpected order: %v", tracks)
	}

	// Guilds are independent.
	other, err := h.Fetch("guild-2")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("guild-2 has %d tracks, want 0", len(other))
	}
}

func TestHistoryTrimsToLimit(t *testing.T) {
	h := newTestHistory(t)

	for i := 0; i < tracksHistoryLimit+5; i++ {
		err := h.Append("guild-1", PlayedTrack{Title: fmt.Sprintf("track-%d", i)})
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	tracks, err := h.Fetch("guild-1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(tracks) != tracksHistoryLimit {
		t.Fatalf("got %d tracks, want %d", len(tracks), tracksHistoryLimit)
	}
	// The oldest entries are the ones dropped.
	if tracks[0].Title != "track-5" {
		t.Errorf("oldest kept = %q, want track-5", tracks[0].Title)
	}
	if tracks[len(tracks)-1].Title != fmt.Sprintf("track-%d", tracksHistoryLimit+4) {
		t.Errorf("newest = %q", tracks[len(tracks)-1].Title)
	}
}
