package music

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dradio/internal/bot"
	"dradio/internal/command"
	"dradio/internal/player"

	"github.com/bwmarrin/discordgo"
)

type VolumeCommand struct {
	Bot bot.MusicBot
}

func (c *VolumeCommand) Name() string        { return "volume" }
func (c *VolumeCommand) Description() string { return "Adjust music volume (0-100)" }
func (c *VolumeCommand) Group() string       { return "music" }

func (c *VolumeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "level",
				Description: "Volume level between 0 and 100",
				Required:    true,
			},
		},
	}
}

func (c *VolumeCommand) Run(ctx interface{}) error {
	context_, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	s := context_.Session
	e := context_.Event

	var level int
	for _, opt := range e.ApplicationCommandData().Options {
		if opt.Name == "level" {
			level = int(opt.IntValue())
		}
	}

	sess, ok := c.Bot.Session(e.GuildID)
	if !ok {
		return bot.RespondEmbed(s, e, bot.ErrorEmbed("Error", "I'm not connected to any voice channel."))
	}

	opCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sess.SetVolume(opCtx, level); err != nil {
		if errors.Is(err, player.ErrVolumeRange) {
			return bot.RespondEmbed(s, e, bot.WarnEmbed("Invalid Volume", "Please provide a volume level between 0 and 100."))
		}
		return bot.RespondEmbed(s, e, bot.ErrorEmbed("Error", fmt.Sprintf("Failed to set volume: `%v`", err)))
	}
	return bot.RespondEmbed(s, e, bot.Embed("Volume Updated", fmt.Sprintf("🔊 Volume has been set to **%d%%**", level), bot.ColorInfo))
}
