package player

import (
	"fmt"
	"time"
)

// Track is an immutable description of a playable item, produced by a
// search against the streaming backend and never mutated afterwards.
type Track struct {
	// Encoded is the backend's opaque playback handle for this track.
	Encoded    string
	Identifier string
	Title      string
	Author     string
	Length     time.Duration
	URI        string
	ArtworkURL string
	IsStream   bool
}

// FormatLength renders the track length as HH:MM:SS for tracks of an hour
// or longer, MM:SS otherwise. Live streams have no meaningful length.
func (t Track) FormatLength() string {
	if t.IsStream {
		return "LIVE"
	}

	total := int64(t.Length / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
