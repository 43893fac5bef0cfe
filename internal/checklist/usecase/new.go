package usecase

import (
	"context"

	"checkbot/internal/checkbox"
	"checkbot/internal/checklist"
	"checkbot/internal/checklist/repository"
	"checkbot/internal/location"
	"checkbot/internal/permission"
	"checkbot/internal/userconfig"
	pkgLog "checkbot/pkg/log"
	"checkbot/pkg/telegram"
)

// Messenger is the part of the Bot API the orchestrator drives.
type Messenger interface {
	permission.Chats
	SendMessage(ctx context.Context, req telegram.SendMessageRequest) (*telegram.Message, error)
	EditMessageText(ctx context.Context, req telegram.EditMessageTextRequest) error
}

// Config holds the public names the rendered links point at.
type Config struct {
	BotUsername string
	WebAppURL   string // mini app host, without scheme
	WebAppName  string // mini app short name for t.me/<bot>/<app> links
}

type implUseCase struct {
	l       pkgLog.Logger
	bot     Messenger
	reader  repository.ContentReader
	configs userconfig.Reader
	codec   *location.Codec
	cb      checkbox.Service
	cfg     Config
}

// New creates a new checklist UseCase instance.
func New(
	l pkgLog.Logger,
	bot Messenger,
	reader repository.ContentReader,
	configs userconfig.Reader,
	codec *location.Codec,
	cb checkbox.Service,
	cfg Config,
) checklist.UseCase {
	return &implUseCase{
		l:       l,
		bot:     bot,
		reader:  reader,
		configs: configs,
		codec:   codec,
		cb:      cb,
		cfg:     cfg,
	}
}
