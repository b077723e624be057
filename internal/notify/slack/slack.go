// Package slack implements the notify Poster for Slack via the Web API.
package slack

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	slackapi "github.com/slack-go/slack"
)

// maxRetries is the max number of retries for rate-limited API calls.
const maxRetries = 3

// slackClient abstracts the Slack API methods we use, enabling test mocks.
type slackClient interface {
	AuthTest() (*slackapi.AuthTestResponse, error)
	PostMessage(channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// Poster posts digest messages to a Slack channel.
type Poster struct {
	client    slackClient
	channelID string
}

// PosterOpts holds parameters for creating a Slack Poster.
type PosterOpts struct {
	BotToken  string // xoxb-... Slack bot token
	ChannelID string // channel to post to
	// For testing: inject a mock client instead of the real Slack API.
	Client slackClient
}

// New creates a Slack Poster and verifies the token.
func New(opts PosterOpts) (*Poster, error) {
	if opts.Client == nil && opts.BotToken == "" {
		return nil, fmt.Errorf("slack: bot token is required")
	}
	if opts.ChannelID == "" {
		return nil, fmt.Errorf("slack: channel is required")
	}

	p := &Poster{client: opts.Client, channelID: opts.ChannelID}
	if p.client == nil {
		p.client = slackapi.New(opts.BotToken)
	}
	if _, err := p.client.AuthTest(); err != nil {
		return nil, fmt.Errorf("slack: auth test: %w", err)
	}
	return p, nil
}

// Post sends the text to the configured channel, retrying on rate limits.
func (p *Poster) Post(ctx context.Context, text string) error {
	err := retryOnRateLimit(ctx, func() error {
		_, _, postErr := p.client.PostMessage(p.channelID,
			slackapi.MsgOptionText(text, false))
		return postErr
	})
	if err != nil {
		return fmt.Errorf("slack: post message: %w", err)
	}
	return nil
}

// Close is a no-op; the Web API client holds no connection.
func (p *Poster) Close() error { return nil }

// retryOnRateLimit calls fn, retrying with backoff when Slack rate-limits.
func retryOnRateLimit(ctx context.Context, fn func() error) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		var rle *slackapi.RateLimitedError
		if !errors.As(err, &rle) {
			return err // not a rate limit error, don't retry
		}

		if attempt == maxRetries {
			return err
		}

		wait := rle.RetryAfter
		if wait <= 0 {
			wait = time.Duration(math.Pow(2, float64(attempt))) * time.Second
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil // unreachable
}
