package music

import (
	"fmt"
	"strings"

	"dradio/internal/bot"
	"dradio/internal/command"

	"github.com/bwmarrin/discordgo"
)

type HistoryCommand struct{}

func (c *HistoryCommand) Name() string        { return "history" }
func (c *HistoryCommand) Description() string { return "Show recently played tracks" }
func (c *HistoryCommand) Group() string       { return "music" }

func (c *HistoryCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *HistoryCommand) Run(ctx interface{}) error {
	context_, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	s := context_.Session
	e := context_.Event

	tracks, err := context_.History.Fetch(e.GuildID)
	if err != nil {
		return bot.RespondEmbed(s, e, bot.ErrorEmbed("Error", fmt.Sprintf("Failed to load history: `%v`", err)))
	}
	if len(tracks) == 0 {
		return bot.RespondEmbed(s, e, bot.WarnEmbed("No History", "Nothing has been played here yet."))
	}

	var sb strings.Builder
	// Newest first.
	for i := len(tracks) - 1; i >= 0; i-- {
		t := tracks[i]
		if t.URI != "" {
			fmt.Fprintf(&sb, "%d. [%s](%s) — %s\n", len(tracks)-i, t.Title, t.URI, t.Author)
		} else {
			fmt.Fprintf(&sb, "%d. %s — %s\n", len(tracks)-i, t.Title, t.Author)
		}
	}
	return bot.RespondEmbed(s, e, bot.Embed("Recently Played", sb.String(), bot.ColorInfo))
}
