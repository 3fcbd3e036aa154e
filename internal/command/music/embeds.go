package music

import (
	"dradio/internal/bot"
	"dradio/internal/player"

	"github.com/bwmarrin/discordgo"
)

// trackEmbed renders a track card: title, author, duration, artwork.
func trackEmbed(title string, t player.Track, color int) *discordgo.MessageEmbed {
	embed := bot.Embed(title, "🎶 **"+t.Title+"**", color)
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Author", Value: t.Author, Inline: true},
		{Name: "Duration", Value: t.FormatLength(), Inline: true},
	}
	if t.ArtworkURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: t.ArtworkURL}
	}
	return embed
}

// ControlSurface builds the interactive now-playing message: the track
// card plus transport buttons. Custom IDs carry the play command's name
// prefix so component dispatch routes back here.
func ControlSurface(t player.Track) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := trackEmbed("Now Playing", t, bot.ColorInfo)

	row := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Pause/Resume",
				Style:    discordgo.SecondaryButton,
				CustomID: "play:pause",
				Emoji:    &discordgo.ComponentEmoji{Name: "⏯️"},
			},
			discordgo.Button{
				Label:    "Skip",
				Style:    discordgo.PrimaryButton,
				CustomID: "play:skip",
				Emoji:    &discordgo.ComponentEmoji{Name: "⏭️"},
			},
			discordgo.Button{
				Label:    "Stop",
				Style:    discordgo.DangerButton,
				CustomID: "play:stop",
				Emoji:    &discordgo.ComponentEmoji{Name: "⏹️"},
			},
			discordgo.Button{
				Label:    "Queue",
				Style:    discordgo.SecondaryButton,
				CustomID: "play:queue",
				Emoji:    &discordgo.ComponentEmoji{Name: "📜"},
			},
		},
	}

	return embed, []discordgo.MessageComponent{row}
}
