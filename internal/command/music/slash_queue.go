package music

import (
	"fmt"
	"strings"

	"dradio/internal/bot"
	"dradio/internal/command"

	"github.com/bwmarrin/discordgo"
)

const queueRenderLimit = 10

type QueueCommand struct {
	Bot bot.MusicBot
}

func (c *QueueCommand) Name() string        { return "queue" }
func (c *QueueCommand) Description() string { return "Show the current music queue" }
func (c *QueueCommand) Group() string       { return "music" }

func (c *QueueCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *QueueCommand) Run(ctx interface{}) error {
	context_, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	s := context_.Session
	e := context_.Event

	sess, ok := c.Bot.Session(e.GuildID)
	if !ok {
		return bot.RespondEmbed(s, e, bot.WarnEmbed("Queue Empty", "The queue is currently empty."))
	}

	var sb strings.Builder
	if current, playing := sess.CurrentTrack(); playing {
		fmt.Fprintf(&sb, "**Currently Playing:**\n%s\n\n", current.Title)
	}

	lines, more := sess.Queue().Render(queueRenderLimit)
	if len(lines) > 0 {
		sb.WriteString("**Up Next:**\n")
		sb.WriteString(joinQueueLines(lines, more))
	}

	if sb.Len() == 0 {
		return bot.RespondEmbed(s, e, bot.WarnEmbed("Queue Empty", "The queue is currently empty."))
	}
	return bot.RespondEmbed(s, e, bot.Embed("Music Queue", sb.String(), bot.ColorInfo))
}

// joinQueueLines joins rendered queue lines, appending the truncation
// remainder when the queue overflows the display cap.
func joinQueueLines(lines []string, more int) string {
	out := strings.Join(lines, "\n")
	if more > 0 {
		out += fmt.Sprintf("\n... and %d more", more)
	}
	return out
}
