package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ChannelStore persists the guild → AI-relay-channel mapping as a flat
// JSON file: {"channels": {"<guild-id>": "<channel-id>"}}. The file is
// read on every lookup and rewritten wholesale on every update; writes
// are rare and guild-scoped, so last-writer-wins is fine.
type ChannelStore struct {
	path string
}

func NewChannelStore(path string) *ChannelStore {
	return &ChannelStore{path: path}
}

type channelsFile struct {
	Channels map[string]string `json:"channels"`
}

// load reads the config file. A missing or unparsable file is an empty
// configuration, never an error.
func (s *ChannelStore) load() channelsFile {
	cfg := channelsFile{Channels: map[string]string{}}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil || cfg.Channels == nil {
		return channelsFile{Channels: map[string]string{}}
	}
	return cfg
}

// Channel returns the designated AI relay channel for the guild. Absence
// means the relay only answers when explicitly mentioned.
func (s *ChannelStore) Channel(guildID string) (string, bool) {
	cfg := s.load()
	id, ok := cfg.Channels[guildID]
	return id, ok
}

// SetChannel designates channelID for the guild. An empty channelID
// removes the guild's entry entirely.
func (s *ChannelStore) SetChannel(guildID, channelID string) error {
	cfg := s.load()
	if channelID == "" {
		delete(cfg.Channels, guildID)
	} else {
		cfg.Channels[guildID] = channelID
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode channel config: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write channel config: %w", err)
	}
	return nil
}
