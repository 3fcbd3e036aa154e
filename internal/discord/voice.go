package discord

import (
	"fmt"
	"log"

	"dradio/internal/bot"
	"dradio/internal/lavalink"

	"github.com/bwmarrin/discordgo"
)

// voiceCreds collects the credential triple the Lavalink node needs to
// take over a voice connection. Discord delivers it across two gateway
// events, in either order.
type voiceCreds struct {
	sessionID string
	token     string
	endpoint  string
}

func (vc *voiceCreds) complete() bool {
	return vc.sessionID != "" && vc.token != "" && vc.endpoint != ""
}

// FindUserVoiceState finds the voice state of a user.
func (b *Bot) FindUserVoiceState(guildID, userID string) (*bot.VoiceState, error) {
	guild, err := b.dg.State.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving guild: %w", err)
	}

	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID {
			return &bot.VoiceState{ChannelID: vs.ChannelID, UserID: vs.UserID}, nil
		}
	}
	return nil, fmt.Errorf("user not in any voice channel")
}

func (b *Bot) onVoiceServerUpdate(s *discordgo.Session, e *discordgo.VoiceServerUpdate) {
	b.mu.Lock()
	creds, ok := b.voicePending[e.GuildID]
	if !ok {
		creds = &voiceCreds{}
		b.voicePending[e.GuildID] = creds
	}
	creds.token = e.Token
	creds.endpoint = e.Endpoint
	snapshot := *creds
	b.mu.Unlock()

	b.pushVoiceUpdate(e.GuildID, snapshot)
}

func (b *Bot) onVoiceStateUpdate(s *discordgo.Session, e *discordgo.VoiceStateUpdate) {
	if e.UserID != s.State.User.ID {
		return
	}

	// The bot got kicked or moved out of voice: backend-initiated
	// disconnects tear the session down too.
	if e.ChannelID == "" {
		if sess, ok := b.registry.Get(e.GuildID); ok {
			log.Printf("[INFO] [%s] Voice connection dropped, closing session", e.GuildID)
			b.deleteControlMessage(sess)
			sess.Close(b.runCtx)
		}
		b.mu.Lock()
		delete(b.voicePending, e.GuildID)
		b.mu.Unlock()
		return
	}

	b.mu.Lock()
	creds, ok := b.voicePending[e.GuildID]
	if !ok {
		creds = &voiceCreds{}
		b.voicePending[e.GuildID] = creds
	}
	creds.sessionID = e.SessionID
	snapshot := *creds
	b.mu.Unlock()

	b.pushVoiceUpdate(e.GuildID, snapshot)
}

// pushVoiceUpdate hands the credentials to the node once both gateway
// events have arrived.
func (b *Bot) pushVoiceUpdate(guildID string, creds voiceCreds) {
	if !creds.complete() {
		return
	}

	err := b.lava.UpdatePlayer(b.runCtx, guildID, lavalink.PlayerUpdate{
		Voice: &lavalink.VoiceState{
			Token:     creds.token,
			Endpoint:  creds.endpoint,
			SessionID: creds.sessionID,
		},
	})
	if err != nil {
		log.Printf("[ERR] [%s] Failed to push voice update to lavalink: %v", guildID, err)
	}
}
