package discord

import (
	"context"
	"fmt"
	"log"
	"sync"

	"dradio/internal/ai"
	"dradio/internal/bot"
	"dradio/internal/command"
	"dradio/internal/command/music"
	"dradio/internal/command/relay"
	"dradio/internal/config"
	"dradio/internal/lavalink"
	"dradio/internal/player"
	"dradio/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// Bot is the Discord bot: it owns the gateway session, the Lavalink
// client, the playback session registry and the AI relay.
type Bot struct {
	dg       *discordgo.Session
	cfg      *config.Config
	channels *storage.ChannelStore
	history  *storage.History
	registry *player.Registry
	lava     *lavalink.Client
	relay    *ai.Relay

	mu           sync.Mutex
	voicePending map[string]*voiceCreds
	lavaOnce     sync.Once
	runCtx       context.Context
}

func NewBot(cfg *config.Config, channels *storage.ChannelStore, history *storage.History) *Bot {
	b := &Bot{
		cfg:          cfg,
		channels:     channels,
		history:      history,
		registry:     player.NewRegistry(),
		lava:         lavalink.New(cfg.LavalinkAddr, cfg.LavalinkPassword, cfg.LavalinkSecure),
		voicePending: make(map[string]*voiceCreds),
	}

	var provider ai.Provider
	if cfg.GroqAPIKey != "" {
		provider = ai.NewGroqProvider(cfg.GroqAPIKey, cfg.GroqModel)
	} else {
		log.Println("[WARN] GROQ_API_KEY is not set, AI relay disabled")
	}
	b.relay = ai.NewRelay(provider)

	b.registerLocalCommands()
	return b
}

// registerLocalCommands wires command implementations into the registry.
func (b *Bot) registerLocalCommands() {
	command.Register(&music.PlayCommand{Bot: b})
	command.Register(&music.SkipCommand{Bot: b})
	command.Register(&music.QueueCommand{Bot: b})
	command.Register(&music.StopCommand{Bot: b})
	command.Register(&music.VolumeCommand{Bot: b})
	command.Register(&music.FilterCommand{Bot: b})
	command.Register(&music.HistoryCommand{})
	command.Register(&relay.SetupCommand{})
}

// Run starts the bot and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	b.dg = dg
	b.runCtx = ctx

	dg.Identify.Intents = discordgo.IntentsAll
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onInteractionCreate)
	dg.AddHandler(b.onVoiceServerUpdate)
	dg.AddHandler(b.onVoiceStateUpdate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()
	defer b.lava.Close()

	<-ctx.Done()
	log.Println("[INFO] Shutdown signal received. Cleaning up...")
	return nil
}

// onReady connects the Lavalink node (the handshake needs the bot user ID)
// and syncs slash commands for every guild.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.lavaOnce.Do(func() {
		if err := b.lava.Connect(b.runCtx, s.State.User.ID); err != nil {
			log.Printf("[ERR] Lavalink connect failed: %v", err)
		} else {
			go b.routeEvents(b.runCtx)
		}
	})

	if err := s.UpdateWatchStatus(0, "AI & Music"); err != nil {
		log.Printf("[WARN] Failed to set presence: %v", err)
	}

	for _, g := range r.Guilds {
		if err := b.registerSlashCommands(g.ID); err != nil {
			log.Printf("[ERR] Error registering slash commands for guild %s: %v", g.ID, err)
		}
	}

	log.Printf("[INFO] ✅ Discord bot %v is running.", s.State.User.Username)
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.Printf("[INFO] Bot added to guild: %s (%s)", g.Guild.ID, g.Guild.Name)
	if err := b.registerSlashCommands(g.Guild.ID); err != nil {
		log.Printf("[ERR] Failed to register commands for guild %s: %v", g.Guild.ID, err)
	}
}

// onInteractionCreate dispatches slash commands by name and message
// components by custom-ID prefix.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		cmdName := i.ApplicationCommandData().Name
		cmd, ok := command.Get(cmdName)
		if !ok {
			log.Printf("[WARN] Unknown command: %s", cmdName)
			return
		}

		ctx := &command.SlashInteractionContext{
			Session:  s,
			Event:    i,
			Channels: b.channels,
			History:  b.history,
		}
		if err := cmd.Run(ctx); err != nil {
			log.Println("[ERR] Error running slash command:", err)
			_ = bot.RespondEmbedEphemeral(s, i, bot.ErrorEmbed("Error", fmt.Sprintf("Error running command: %v", err)))
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID

		for _, cmd := range command.All() {
			handler, ok := cmd.(command.ComponentHandler)
			if !ok || !hasPrefix(customID, cmd.Name()) {
				continue
			}

			ctx := &command.ComponentInteractionContext{
				Session:  s,
				Event:    i,
				Channels: b.channels,
				History:  b.history,
			}
			if err := handler.Component(ctx); err != nil {
				log.Printf("[ERR] Error running component %s: %v", customID, err)
			}
			return
		}
		log.Printf("[WARN] No matching component for customID: %s", customID)
	}
}

func hasPrefix(customID, name string) bool {
	return customID == name || len(customID) > len(name) && customID[:len(name)+1] == name+":"
}

// --- bot.MusicBot ---

// Search resolves a query through the Lavalink node.
func (b *Bot) Search(ctx context.Context, query string) ([]player.Track, error) {
	tracks, err := b.lava.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]player.Track, len(tracks))
	for i, t := range tracks {
		out[i] = trackFromLavalink(t)
	}
	return out, nil
}

// OpenSession returns the guild's live session, creating it (and joining
// the voice channel) when none exists. Concurrent callers share one
// session; a second play never opens a duplicate voice connection.
func (b *Bot) OpenSession(guildID, voiceChannelID, textChannelID string) (*player.Session, error) {
	sess, created, err := b.registry.GetOrCreate(guildID, func() (*player.Session, error) {
		if err := b.dg.ChannelVoiceJoinManual(guildID, voiceChannelID, false, true); err != nil {
			return nil, fmt.Errorf("failed to join voice channel: %w", err)
		}
		s := player.NewSession(guildID, textChannelID, lavalinkBackend{b.lava}, func() {
			b.registry.Remove(guildID)
		})
		s.Start()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	if created {
		log.Printf("[INFO] [%s] Opened playback session in channel %s", guildID, voiceChannelID)
	}
	return sess, nil
}

// Session returns the guild's live session, if any.
func (b *Bot) Session(guildID string) (*player.Session, bool) {
	return b.registry.Get(guildID)
}

// CloseSession tears the guild's session down, cleans up the control
// surface and leaves the voice channel.
func (b *Bot) CloseSession(ctx context.Context, guildID string) error {
	sess, ok := b.registry.Get(guildID)
	if !ok {
		return fmt.Errorf("no active session")
	}

	b.deleteControlMessage(sess)
	sess.Close(ctx)

	if err := b.dg.ChannelVoiceJoinManual(guildID, "", false, true); err != nil {
		log.Printf("[WARN] [%s] Failed to leave voice channel: %v", guildID, err)
	}

	b.mu.Lock()
	delete(b.voicePending, guildID)
	b.mu.Unlock()
	return nil
}
