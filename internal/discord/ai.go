package discord

import (
	"log"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

// discordMessageLimit is Discord's hard cap per message; longer AI
// replies are split into consecutive chunks.
const discordMessageLimit = 2000

// onMessageCreate is the AI relay: messages in the guild's designated
// channel, or mentioning the bot anywhere, are forwarded to the inference
// API and answered in-channel.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	designated, configured := b.channels.Channel(m.GuildID)
	inDesignated := configured && m.ChannelID == designated

	mentioned := false
	for _, user := range m.Mentions {
		if user.ID == s.State.User.ID {
			mentioned = true
			break
		}
	}

	if !inDesignated && !mentioned {
		return
	}

	content := stripMentions(m.Content, s.State.User.ID)
	if content == "" {
		return
	}

	// The gateway handler must not block on the inference call.
	go func() {
		_ = s.ChannelTyping(m.ChannelID)

		reply := b.relay.Respond(content)
		for _, chunk := range splitMessage(reply, discordMessageLimit) {
			if _, err := s.ChannelMessageSendReply(m.ChannelID, chunk, m.Reference()); err != nil {
				log.Printf("[ERR] [%s] Failed to send AI reply: %v", m.GuildID, err)
				return
			}
		}
	}()
}

func stripMentions(content, botID string) string {
	content = strings.ReplaceAll(content, "<@!"+botID+">", "")
	content = strings.ReplaceAll(content, "<@"+botID+">", "")
	return strings.TrimSpace(content)
}

// splitMessage cuts s into chunks of at most limit bytes, backing each cut
// off to a rune boundary so a multibyte character straddling the limit never
// produces an invalid chunk.
func splitMessage(s string, limit int) []string {
	var chunks []string
	for len(s) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		if cut == 0 {
			cut = limit
		}
		chunks = append(chunks, s[:cut])
		s = s[cut:]
	}
	if s != "" {
		chunks = append(chunks, s)
	}
	return chunks
}
