package bot

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/susu3304/posbot/internal/commands"
	"github.com/susu3304/posbot/internal/shift"
)

// Minimal session interface for replying to users.
type sender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

const (
	attemptTimeout = 12 * time.Second
	maxAttempts    = 2
)

// sendResponse posts a response to a channel. Long text is split; buttons go
// on the last chunk.
func (b *Bot) sendResponse(ctx context.Context, channelID string, resp shift.Response) error {
	chunks := commands.SplitContent(resp.Text, commands.MaxContentLen)
	for idx, chunk := range chunks {
		msg := &discordgo.MessageSend{Content: chunk}
		if idx == len(chunks)-1 {
			msg.Components = commands.Components(resp)
		}
		err := withRetry(ctx, func(ctx context.Context) error {
			_, err := b.out.ChannelMessageSendComplex(channelID, msg, discordgo.WithContext(ctx))
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// respondInteraction answers a slash command or button press. Replies in
// guild channels are ephemeral so a user's ledger stays private.
func (b *Bot) respondInteraction(ctx context.Context, i *discordgo.Interaction, resp shift.Response) error {
	var flags discordgo.MessageFlags
	if i.GuildID != "" {
		flags = discordgo.MessageFlagsEphemeral
	}

	chunks := commands.SplitContent(resp.Text, commands.MaxContentLen)
	first := &discordgo.InteractionResponseData{Content: chunks[0], Flags: flags}
	if len(chunks) == 1 {
		first.Components = commands.Components(resp)
	}
	err := withRetry(ctx, func(ctx context.Context) error {
		return b.out.InteractionRespond(i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: first,
		}, discordgo.WithContext(ctx))
	})
	if err != nil {
		return err
	}

	for idx := 1; idx < len(chunks); idx++ {
		params := &discordgo.WebhookParams{Content: chunks[idx], Flags: flags}
		if idx == len(chunks)-1 {
			params.Components = commands.Components(resp)
		}
		err := withRetry(ctx, func(ctx context.Context) error {
			_, err := b.out.FollowupMessageCreate(i, true, params, discordgo.WithContext(ctx))
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func withRetry(ctx context.Context, send func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		sendCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		err := send(sendCtx)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isTemporaryOrTimeout(err) {
			return err
		}
		time.Sleep(time.Duration(300+rand.Intn(500)) * time.Millisecond)
	}
	return lastErr
}

func isTemporaryOrTimeout(err error) bool {
	if err == nil {
		return false
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return errors.Is(err, context.DeadlineExceeded)
}
