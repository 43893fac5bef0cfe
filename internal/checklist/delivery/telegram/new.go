package telegram

import (
	"time"

	"github.com/gin-gonic/gin"

	"checkbot/internal/checkbox"
	"checkbot/internal/checklist"
	"checkbot/internal/userconfig"
	pkgLog "checkbot/pkg/log"
	pkgTelegram "checkbot/pkg/telegram"
)

// processTimeout bounds the background work done for one update.
const processTimeout = 2 * time.Minute

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// Config describes the bot account the handler answers for.
type Config struct {
	BotID       int64
	BotUsername string
	BotName     string
	WebAppURL   string // mini app host; the "new checklist" button is hidden when empty
}

type handler struct {
	l       pkgLog.Logger
	uc      checklist.UseCase
	cb      checkbox.Service
	configs userconfig.Store
	bot     *pkgTelegram.Bot
	cfg     Config
}

// New creates a new Telegram delivery handler.
func New(
	l pkgLog.Logger,
	uc checklist.UseCase,
	cb checkbox.Service,
	configs userconfig.Store,
	bot *pkgTelegram.Bot,
	cfg Config,
) Handler {
	return &handler{
		l:       l,
		uc:      uc,
		cb:      cb,
		configs: configs,
		bot:     bot,
		cfg:     cfg,
	}
}
