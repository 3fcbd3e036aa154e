package music

import (
	"context"
	"time"

	"dradio/internal/bot"
	"dradio/internal/command"
	"dradio/internal/player"

	"github.com/bwmarrin/discordgo"
)

type FilterCommand struct {
	Bot bot.MusicBot
}

func (c *FilterCommand) Name() string        { return "filter" }
func (c *FilterCommand) Description() string { return "Apply audio filters (bassboost, nightcore, clear)" }
func (c *FilterCommand) Group() string       { return "music" }

func (c *FilterCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "name",
				Description: "Filter to apply",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "bassboost", Value: "bassboost"},
					{Name: "nightcore", Value: "nightcore"},
					{Name: "clear", Value: "clear"},
				},
			},
		},
	}
}

func (c *FilterCommand) Run(ctx interface{}) error {
	context_, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	s := context_.Session
	e := context_.Event

	var name string
	for _, opt := range e.ApplicationCommandData().Options {
		if opt.Name == "name" {
			name = opt.StringValue()
		}
	}

	sess, ok := c.Bot.Session(e.GuildID)
	if !ok {
		return bot.RespondEmbed(s, e, bot.ErrorEmbed("Error", "I'm not connected to any voice channel."))
	}

	opCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	applied, err := sess.SetFilter(opCtx, name)
	if err != nil {
		return bot.RespondEmbed(s, e, bot.WarnEmbed("Unknown Filter", "Available filters: `bassboost`, `nightcore`, `clear`"))
	}

	var msg string
	switch applied {
	case player.FilterBassboost:
		msg = "🎸 **Bassboost** filter applied!"
	case player.FilterNightcore:
		msg = "💨 **Nightcore** filter applied!"
	default:
		msg = "✨ Audio filters **cleared**!"
	}
	return bot.RespondEmbed(s, e, bot.Embed("Filter Applied", msg, bot.ColorInfo))
}
