package discord

import (
	"context"
	"log"
	"time"

	"dradio/internal/command/music"
	"dradio/internal/lavalink"
	"dradio/internal/player"
	"dradio/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// routeEvents dispatches track-lifecycle notifications from the Lavalink
// node to the owning session. Events for guilds without a live session
// (e.g. after a disconnect) are dropped.
func (b *Bot) routeEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-b.lava.Events():
			if !ok {
				return
			}

			switch ev.Type {
			case lavalink.EventTrackStart:
				b.handleTrackStart(ev)
			case lavalink.EventTrackEnd:
				b.handleTrackEnd(ev)
			case lavalink.EventTrackException, lavalink.EventTrackStuck:
				log.Printf("[WARN] [%s] Track trouble (%s), reason=%s", ev.GuildID, ev.Type, ev.Reason)
			case lavalink.EventWebSocketClosed:
				b.handleVoiceClosed(ev)
			}
		}
	}
}

// handleTrackStart records history and replaces the control surface with
// a fresh one for the new track.
func (b *Bot) handleTrackStart(ev lavalink.Event) {
	sess, ok := b.registry.Get(ev.GuildID)
	if !ok || ev.Track == nil {
		return
	}

	track := trackFromLavalink(*ev.Track)
	sess.HandleTrackStart(track)

	if err := b.history.Append(ev.GuildID, storage.PlayedTrack{
		Title:    track.Title,
		Author:   track.Author,
		URI:      track.URI,
		PlayedAt: time.Now(),
	}); err != nil {
		log.Printf("[WARN] [%s] Failed to record history: %v", ev.GuildID, err)
	}

	b.renderControlSurface(sess, track)
}

// handleTrackEnd removes the control surface and signals the session's
// playback loop, which advances the queue or settles into idle.
func (b *Bot) handleTrackEnd(ev lavalink.Event) {
	sess, ok := b.registry.Get(ev.GuildID)
	if !ok {
		return
	}

	b.deleteControlMessage(sess)

	var track player.Track
	if ev.Track != nil {
		track = trackFromLavalink(*ev.Track)
	}
	sess.HandleTrackEnd(track)
}

// handleVoiceClosed tears the session down after the node lost the voice
// connection (inactivity timeout, region move, kick).
func (b *Bot) handleVoiceClosed(ev lavalink.Event) {
	sess, ok := b.registry.Get(ev.GuildID)
	if !ok {
		return
	}

	log.Printf("[INFO] [%s] Voice websocket closed (code %d), closing session", ev.GuildID, ev.Code)
	b.deleteControlMessage(sess)
	sess.Close(b.runCtx)
}

// renderControlSurface posts the interactive now-playing message to the
// session's home channel and swaps it in as the authoritative reference;
// the previous message is deleted best-effort.
func (b *Bot) renderControlSurface(sess *player.Session, track player.Track) {
	channelID := sess.TextChannelID()
	if channelID == "" {
		return
	}

	embed, components := music.ControlSurface(track)
	msg, err := b.dg.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	if err != nil {
		log.Printf("[WARN] [%s] Failed to send control surface: %v", sess.GuildID(), err)
		return
	}

	if prevChannel, prevMessage, ok := sess.SwapControlMessage(channelID, msg.ID); ok {
		// Best-effort: the message may already be gone.
		_ = b.dg.ChannelMessageDelete(prevChannel, prevMessage)
	}
}

// deleteControlMessage removes the session's control surface. Deletion
// failures are intentionally discarded: cleanup is best-effort and the
// message may have been removed already.
func (b *Bot) deleteControlMessage(sess *player.Session) {
	if channelID, messageID, ok := sess.TakeControlMessage(); ok {
		_ = b.dg.ChannelMessageDelete(channelID, messageID)
	}
}
