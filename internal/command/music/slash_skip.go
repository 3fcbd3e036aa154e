package music

import (
	"context"
	"time"

	"dradio/internal/bot"
	"dradio/internal/command"

	"github.com/bwmarrin/discordgo"
)

type SkipCommand struct {
	Bot bot.MusicBot
}

func (c *SkipCommand) Name() string        { return "skip" }
func (c *SkipCommand) Description() string { return "Skip the current song" }
func (c *SkipCommand) Group() string       { return "music" }

func (c *SkipCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *SkipCommand) Run(ctx interface{}) error {
	context_, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	s := context_.Session
	e := context_.Event

	sess, ok := c.Bot.Session(e.GuildID)
	if !ok {
		return bot.RespondEmbed(s, e, bot.WarnEmbed("Nothing Playing", "There are no tracks to skip."))
	}

	opCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sess.Skip(opCtx); err != nil {
		return bot.RespondEmbed(s, e, bot.WarnEmbed("Nothing Playing", "There are no tracks to skip."))
	}
	return bot.RespondEmbed(s, e, bot.Embed("Skipped", "⏭️ The current track has been skipped.", bot.ColorInfo))
}
