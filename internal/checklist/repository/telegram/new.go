package telegram

import (
	"context"

	"checkbot/internal/checklist/repository"
	pkgLog "checkbot/pkg/log"
	pkgTelegram "checkbot/pkg/telegram"
)

// Forwarder is the part of the Bot API used to read messages.
type Forwarder interface {
	ForwardMessage(ctx context.Context, chatID, fromChatID, messageID int64) (*pkgTelegram.Message, error)
	DeleteMessage(ctx context.Context, chatID, messageID int64) error
}

type implRepository struct {
	l     pkgLog.Logger
	bot   Forwarder
	botID int64
}

// New creates a ContentReader that reads through forwards. botID is the
// bot's own user id; only messages the bot sent, or channel posts, are
// accepted as canonical copies.
func New(l pkgLog.Logger, bot Forwarder, botID int64) repository.ContentReader {
	return &implRepository{l: l, bot: bot, botID: botID}
}
