package bot

import (
	"context"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/susu3304/posbot/internal/commands"
	"github.com/susu3304/posbot/internal/shift"
)

func (b *Bot) onReady(s *discordgo.Session, event *discordgo.Ready) {
	log.Printf("%s is connected!", event.User.Username)

	// Register commands for all guilds
	for _, guild := range event.Guilds {
		if err := b.registerGuildCommands(guild.ID); err != nil {
			log.Printf("Failed to register commands for guild %s: %v", guild.ID, err)
		}
	}
}

func (b *Bot) onGuildCreate(s *discordgo.Session, event *discordgo.GuildCreate) {
	log.Printf("Guild available/joined: %s (id=%s), ensuring commands", event.Name, event.ID)
	if err := b.registerGuildCommands(event.ID); err != nil {
		log.Printf("Failed to register commands for guild %s: %v", event.ID, err)
	}
}

func (b *Bot) registerGuildCommands(guildID string) error {
	cmds := commands.GetCommands()
	// Delete existing commands and register new ones
	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, guildID, cmds)
	if err != nil {
		return err
	}

	log.Printf("Registered application commands for guild %s", guildID)
	return nil
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	b.handleMessage(context.Background(), m.Message)
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.handleInteraction(context.Background(), i.Interaction)
}

func (b *Bot) handleMessage(ctx context.Context, m *discordgo.Message) {
	// Ignore bot messages
	if m.Author == nil || m.Author.Bot {
		return
	}
	if strings.TrimSpace(m.Content) == "" {
		return
	}

	in := shift.ParseText(m.Content)
	// In shared channels only listen to users who are mid-shift.
	if m.GuildID != "" && in.Kind != shift.IntentStart && !b.engine.InShift(m.Author.ID) {
		return
	}

	resp := b.engine.HandleIntent(m.Author.ID, in)
	if err := b.sendResponse(ctx, m.ChannelID, resp); err != nil {
		log.Printf("bot: failed to reply to %s in channel %s: %v", m.Author.ID, m.ChannelID, err)
	}
}

func (b *Bot) handleInteraction(ctx context.Context, i *discordgo.Interaction) {
	var (
		in shift.Intent
		ok bool
	)
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		in, ok = commands.IntentFromCommand(i.ApplicationCommandData().Name)
	case discordgo.InteractionMessageComponent:
		in, ok = commands.IntentFromCustomID(i.MessageComponentData().CustomID)
	}
	if !ok {
		return
	}

	userID := commands.InteractionUserID(i)
	if userID == "" {
		return
	}

	resp := b.engine.HandleIntent(userID, in)
	if err := b.respondInteraction(ctx, i, resp); err != nil {
		log.Printf("bot: failed to respond to interaction from %s: %v", userID, err)
	}
}
