package command

import (
	"dradio/internal/storage"

	"github.com/bwmarrin/discordgo"
)

type Command interface {
	Name() string
	Description() string
	Group() string
	Run(ctx interface{}) error
}

// SlashProvider is implemented by commands that register a slash definition.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// ComponentHandler is implemented by commands that own message components
// (buttons). Custom IDs are routed by command-name prefix.
type ComponentHandler interface {
	Component(ctx interface{}) error
}

type SlashInteractionContext struct {
	Session  *discordgo.Session
	Event    *discordgo.InteractionCreate
	Channels *storage.ChannelStore
	History  *storage.History
}

type ComponentInteractionContext struct {
	Session  *discordgo.Session
	Event    *discordgo.InteractionCreate
	Channels *storage.ChannelStore
	History  *storage.History
}
