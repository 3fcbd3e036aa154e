package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/keshon/datastore"
)

const tracksHistoryLimit = 12

// History keeps the recently played tracks per guild.
type History struct {
	ds *datastore.DataStore
}

type PlayedTrack struct {
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	URI      string    `json:"uri"`
	PlayedAt time.Time `json:"played_at"`
}

type historyRecord struct {
	Tracks []PlayedTrack `json:"tracks"`
}

func NewHistory(filePath string) (*History, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &History{ds: ds}, nil
}

func (h *History) Close() error {
	return h.ds.Close()
}

// getOrCreateRecord loads the guild's record, round-tripping through JSON
// since the datastore hands back untyped values.
func (h *History) getOrCreateRecord(guildID string) (*historyRecord, error) {
	data, exists := h.ds.Get(guildID)
	if !exists {
		return &historyRecord{}, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshalling data: %w", err)
	}

	var record historyRecord
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return nil, fmt.Errorf("error unmarshalling history record: %w", err)
	}
	return &record, nil
}

// Append records a played track, keeping only the newest entries.
func (h *History) Append(guildID string, track PlayedTrack) error {
	record, err := h.getOrCreateRecord(guildID)
	if err != nil {
		return err
	}

	record.Tracks = append(record.Tracks, track)
	if len(record.Tracks) > tracksHistoryLimit {
		record.Tracks = record.Tracks[len(record.Tracks)-tracksHistoryLimit:]
	}

	h.ds.Add(guildID, record)
	return nil
}

// Fetch returns the guild's play history, newest last.
func (h *History) Fetch(guildID string) ([]PlayedTrack, error) {
	record, err := h.getOrCreateRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.Tracks, nil
}
