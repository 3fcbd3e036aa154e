package bot

import (
	"context"

	"dradio/internal/player"
)

// MusicBot is the surface the Discord bot exposes to commands, so command
// packages never import the discord package directly (avoids import cycles).
type MusicBot interface {
	// Search resolves a query against the streaming backend,
	// first-result-wins policy applied by the caller.
	Search(ctx context.Context, query string) ([]player.Track, error)

	// OpenSession returns the guild's live session, joining the voice
	// channel and creating one if needed.
	OpenSession(guildID, voiceChannelID, textChannelID string) (*player.Session, error)

	// Session returns the guild's live session, if any.
	Session(guildID string) (*player.Session, bool)

	// CloseSession tears the guild's session down and leaves voice.
	CloseSession(ctx context.Context, guildID string) error

	FindUserVoiceState(guildID, userID string) (*VoiceState, error)
}

// VoiceState holds minimal voice channel state for a user.
type VoiceState struct {
	ChannelID string
	UserID    string
}
