package music

import (
	"context"
	"fmt"
	"time"

	"dradio/internal/bot"
	"dradio/internal/command"

	"github.com/bwmarrin/discordgo"
)

type StopCommand struct {
	Bot bot.MusicBot
}

func (c *StopCommand) Name() string        { return "stop" }
func (c *StopCommand) Description() string { return "Stop music and clear queue" }
func (c *StopCommand) Group() string       { return "music" }

func (c *StopCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *StopCommand) Run(ctx interface{}) error {
	context_, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	s := context_.Session
	e := context_.Event

	if _, ok := c.Bot.Session(e.GuildID); !ok {
		return bot.RespondEmbed(s, e, bot.ErrorEmbed("Error", "I'm not connected to any voice channel."))
	}

	opCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := c.Bot.CloseSession(opCtx, e.GuildID); err != nil {
		return bot.RespondEmbed(s, e, bot.ErrorEmbed("Error", fmt.Sprintf("Failed to stop: `%v`", err)))
	}
	return bot.RespondEmbed(s, e, bot.Embed("Stopped", "⏹️ Music stopped and disconnected from voice channel.", bot.ColorInfo))
}
