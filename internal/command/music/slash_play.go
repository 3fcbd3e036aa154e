package music

import (
	"context"
	"fmt"
	"time"

	"dradio/internal/bot"
	"dradio/internal/command"

	"github.com/bwmarrin/discordgo"
)

type PlayCommand struct {
	Bot bot.MusicBot
}

func (c *PlayCommand) Name() string        { return "play" }
func (c *PlayCommand) Description() string { return "Play music or add to queue" }
func (c *PlayCommand) Group() string       { return "music" }

func (c *PlayCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "search",
				Description: "Link or search query",
				Required:    true,
			},
		},
	}
}

func (c *PlayCommand) Run(ctx interface{}) error {
	context_, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	s := context_.Session
	e := context_.Event

	var query string
	for _, opt := range e.ApplicationCommandData().Options {
		if opt.Name == "search" {
			query = opt.StringValue()
		}
	}

	voiceState, err := c.Bot.FindUserVoiceState(e.GuildID, e.Member.User.ID)
	if err != nil {
		return bot.RespondEmbed(s, e, bot.ErrorEmbed("Error", "You need to join a voice channel first!"))
	}

	if err := bot.RespondDeferred(s, e); err != nil {
		return fmt.Errorf("failed to send deferred response: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	tracks, err := c.Bot.Search(reqCtx, query)
	if err != nil {
		_ = bot.FollowupEmbed(s, e, bot.ErrorEmbed("Error", fmt.Sprintf("Search failed: `%v`", err)))
		return nil
	}
	if len(tracks) == 0 {
		_ = bot.FollowupEmbed(s, e, bot.WarnEmbed("Not Found", fmt.Sprintf("No tracks found for: `%s`", query)))
		return nil
	}

	// First result wins; no disambiguation UI.
	track := tracks[0]

	sess, err := c.Bot.OpenSession(e.GuildID, voiceState.ChannelID, e.ChannelID)
	if err != nil {
		_ = bot.FollowupEmbed(s, e, bot.ErrorEmbed("Error", fmt.Sprintf("Failed to join voice: `%v`", err)))
		return nil
	}
	sess.SetTextChannel(e.ChannelID)

	if queued := sess.Play(track); queued {
		_ = bot.FollowupEmbed(s, e, trackEmbed("Added to Queue", track, bot.ColorSuccess))
	} else {
		// The control surface lands once the backend reports track start.
		_ = bot.FollowupEmbed(s, e, trackEmbed("Starting Playback", track, bot.ColorInfo))
	}
	return nil
}

// Component handles the control-surface buttons. Every button first
// acknowledges the interaction, then re-validates preconditions against
// live session state: the surface may be a stale snapshot.
func (c *PlayCommand) Component(ctx interface{}) error {
	context_, ok := ctx.(*command.ComponentInteractionContext)
	if !ok {
		return nil
	}

	s := context_.Session
	e := context_.Event

	if err := bot.AckComponent(s, e); err != nil {
		return fmt.Errorf("failed to ack component: %w", err)
	}

	sess, ok := c.Bot.Session(e.GuildID)
	if !ok {
		return bot.FollowupEphemeral(s, e, "No active playback session.")
	}

	opCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch e.MessageComponentData().CustomID {
	case "play:pause":
		paused, err := sess.TogglePause(opCtx)
		if err != nil {
			return bot.FollowupEphemeral(s, e, "Nothing is playing.")
		}
		if paused {
			return bot.FollowupEphemeral(s, e, "Music paused!")
		}
		return bot.FollowupEphemeral(s, e, "Music resumed!")

	case "play:skip":
		if err := sess.Skip(opCtx); err != nil {
			return bot.FollowupEphemeral(s, e, "Nothing is playing.")
		}
		return bot.FollowupEphemeral(s, e, "Skipped the song!")

	case "play:stop":
		if err := c.Bot.CloseSession(opCtx, e.GuildID); err != nil {
			return bot.FollowupEphemeral(s, e, fmt.Sprintf("Failed to stop: %v", err))
		}
		return bot.FollowupEphemeral(s, e, "Stopped and disconnected!")

	case "play:queue":
		lines, more := sess.Queue().Render(queueRenderLimit)
		if len(lines) == 0 {
			return bot.FollowupEphemeral(s, e, "The queue is empty.")
		}
		return bot.FollowupEphemeral(s, e, "**Current Queue:**\n"+joinQueueLines(lines, more))
	}

	return nil
}
