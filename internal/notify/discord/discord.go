// Package discord implements the notify Poster for Discord via the REST API.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Discord caps message length at 2000 characters; longer digests are
// split on that boundary.
const maxMessageLen = 2000

// session abstracts the discordgo.Session methods we use, enabling test mocks.
type session interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	Close() error
}

// Poster posts digest messages to a Discord channel.
type Poster struct {
	sess      session
	channelID string
}

// PosterOpts holds parameters for creating a Discord Poster.
type PosterOpts struct {
	BotToken  string // Discord bot token
	ChannelID string // channel to post to
	// For testing: inject a mock session instead of the real Discord API.
	Session session
}

// New creates a Discord Poster.
func New(opts PosterOpts) (*Poster, error) {
	if opts.Session == nil && opts.BotToken == "" {
		return nil, fmt.Errorf("discord: bot token is required")
	}
	if opts.ChannelID == "" {
		return nil, fmt.Errorf("discord: channel is required")
	}

	p := &Poster{sess: opts.Session, channelID: opts.ChannelID}
	if p.sess == nil {
		s, err := discordgo.New("Bot " + opts.BotToken)
		if err != nil {
			return nil, fmt.Errorf("discord: new session: %w", err)
		}
		p.sess = s
	}
	return p, nil
}

// Post sends the text to the configured channel, splitting messages that
// exceed the platform limit.
func (p *Poster) Post(ctx context.Context, text string) error {
	for _, chunk := range splitMessage(text) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := p.sess.ChannelMessageSend(p.channelID, chunk); err != nil {
			return fmt.Errorf("discord: send message: %w", err)
		}
	}
	return nil
}

// Close shuts down the underlying session.
func (p *Poster) Close() error { return p.sess.Close() }

// splitMessage splits text into chunks within the Discord message limit,
// preferring newline boundaries.
func splitMessage(text string) []string {
	if len(text) <= maxMessageLen {
		return []string{text}
	}
	var chunks []string
	for len(text) > maxMessageLen {
		cut := maxMessageLen
		for i := maxMessageLen - 1; i > 0; i-- {
			if text[i] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, text[:cut])
		text = text[cut:]
		if len(text) > 0 && text[0] == '\n' {
			text = text[1:]
		}
	}
	if len(text) > 0 {
		chunks = append(chunks, text)
	}
	return chunks
}
