// Package notify delivers launch digests to chat platforms (Slack, Discord).
package notify

import "context"

// Poster is the interface platform-specific senders must satisfy. Digests
// are one-way; there is no inbound message handling.
type Poster interface {
	// Post delivers a plain-text digest message to the configured channel.
	Post(ctx context.Context, text string) error

	// Close releases the underlying platform connection.
	Close() error
}
