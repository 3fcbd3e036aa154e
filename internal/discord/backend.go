package discord

import (
	"context"
	"time"

	"dradio/internal/lavalink"
	"dradio/internal/player"
)

// lavalinkBackend adapts the Lavalink client to the player.Backend the
// session state machine drives.
type lavalinkBackend struct {
	lava *lavalink.Client
}

func (lb lavalinkBackend) Play(ctx context.Context, guildID string, t player.Track) error {
	encoded := t.Encoded
	return lb.lava.UpdatePlayer(ctx, guildID, lavalink.PlayerUpdate{
		Track: &lavalink.PlayerTrack{Encoded: &encoded},
	})
}

func (lb lavalinkBackend) Pause(ctx context.Context, guildID string, paused bool) error {
	return lb.lava.UpdatePlayer(ctx, guildID, lavalink.PlayerUpdate{Paused: &paused})
}

// Stop sends an explicit null track, which makes the node finish the
// current one and emit a track-ended event.
func (lb lavalinkBackend) Stop(ctx context.Context, guildID string) error {
	return lb.lava.UpdatePlayer(ctx, guildID, lavalink.PlayerUpdate{
		Track: &lavalink.PlayerTrack{Encoded: nil},
	})
}

func (lb lavalinkBackend) SetVolume(ctx context.Context, guildID string, level int) error {
	return lb.lava.UpdatePlayer(ctx, guildID, lavalink.PlayerUpdate{Volume: &level})
}

func (lb lavalinkBackend) SetFilter(ctx context.Context, guildID string, f player.Filter) error {
	var filters lavalink.Filters
	switch f {
	case player.FilterBassboost:
		filters = lavalink.BassboostFilters()
	case player.FilterNightcore:
		filters = lavalink.NightcoreFilters()
	default:
		filters = lavalink.ClearFilters()
	}
	return lb.lava.UpdatePlayer(ctx, guildID, lavalink.PlayerUpdate{Filters: &filters})
}

func (lb lavalinkBackend) Destroy(ctx context.Context, guildID string) error {
	return lb.lava.DestroyPlayer(ctx, guildID)
}

func trackFromLavalink(t lavalink.Track) player.Track {
	return player.Track{
		Encoded:    t.Encoded,
		Identifier: t.Info.Identifier,
		Title:      t.Info.Title,
		Author:     t.Info.Author,
		Length:     time.Duration(t.Info.Length) * time.Millisecond,
		URI:        t.Info.URI,
		ArtworkURL: t.Info.ArtworkURL,
		IsStream:   t.Info.IsStream,
	}
}
