// Package session stores per-session chat transcripts. Transcripts are
// append-only: one user and one assistant message per chat interaction,
// never edited or truncated.
package session

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// Store is the conversation log behind the dashboard chat.
type Store interface {
	// Append adds one message to the end of the session's transcript.
	Append(ctx context.Context, sessionID string, message *schema.Message) error

	// History returns the session's full transcript in order. A session
	// with no messages yields an empty slice, not an error.
	History(ctx context.Context, sessionID string) ([]*schema.Message, error)
}
