package relay

import (
	"fmt"

	"dradio/internal/bot"
	"dradio/internal/command"

	"github.com/bwmarrin/discordgo"
)

// SetupCommand designates (or clears) the channel the AI relay answers in.
type SetupCommand struct{}

func (c *SetupCommand) Name() string        { return "setup" }
func (c *SetupCommand) Description() string { return "Configure this channel for AI interaction" }
func (c *SetupCommand) Group() string       { return "relay" }

func (c *SetupCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "set",
				Description: "Use the current channel for AI responses",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "clear",
				Description: "Remove this server's AI channel",
			},
		},
	}
}

func (c *SetupCommand) Run(ctx interface{}) error {
	context_, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	s := context_.Session
	e := context_.Event

	if len(e.ApplicationCommandData().Options) == 0 {
		return bot.RespondEmbedEphemeral(s, e, bot.WarnEmbed("Setup", "Missing subcommand."))
	}

	switch e.ApplicationCommandData().Options[0].Name {
	case "set":
		if err := context_.Channels.SetChannel(e.GuildID, e.ChannelID); err != nil {
			return bot.RespondEmbedEphemeral(s, e, bot.ErrorEmbed("Setup Failed", fmt.Sprintf("`%v`", err)))
		}
		return bot.RespondEmbedEphemeral(s, e,
			bot.Embed("Setup Complete", "✅ This channel has been successfully configured for AI responses.", bot.ColorSuccess))

	case "clear":
		if err := context_.Channels.SetChannel(e.GuildID, ""); err != nil {
			return bot.RespondEmbedEphemeral(s, e, bot.ErrorEmbed("Setup Failed", fmt.Sprintf("`%v`", err)))
		}
		return bot.RespondEmbedEphemeral(s, e,
			bot.Embed("Setup Cleared", "AI responses are now mention-only on this server.", bot.ColorSuccess))

	default:
		return bot.RespondEmbedEphemeral(s, e, bot.WarnEmbed("Setup", "Unknown subcommand."))
	}
}
