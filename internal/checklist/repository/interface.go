package repository

import (
	"context"

	"checkbot/internal/location"
)

// ContentReader fetches the current text of a checklist's canonical copy.
type ContentReader interface {
	// FetchCurrentText reads the canonical message of loc. scratchChatID is a
	// chat the bot may post into; nothing is left behind there.
	FetchCurrentText(ctx context.Context, scratchChatID int64, loc location.Location) (string, error)
}
