package telegram

import (
	"context"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"

	"checkbot/internal/model"
	"checkbot/internal/userconfig"
	pkgLog "checkbot/pkg/log"
	pkgResponse "checkbot/pkg/response"
	pkgTelegram "checkbot/pkg/telegram"
)

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It acknowledges immediately and processes the update in a background
// goroutine, since a toggle needs several Bot API round trips.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		// Telegram retries anything but a 2xx, so a bad update is dropped here.
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	// Detach from the request context, which is cancelled after the response,
	// but keep its values (request id).
	bgCtx := context.WithoutCancel(ctx)
	if pkgLog.RequestID(bgCtx) == "" {
		bgCtx = pkgLog.WithRequestID(bgCtx, "")
	}

	go func() {
		ctx, cancel := context.WithTimeout(bgCtx, processTimeout)
		defer cancel()
		if err := h.processUpdate(ctx, &update); err != nil {
			h.l.Errorf(ctx, "telegram handler: update %d failed: %v", update.UpdateID, err)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

func (h *handler) processUpdate(ctx context.Context, update *pkgTelegram.Update) error {
	switch {
	case update.Message != nil:
		return h.processMessage(ctx, update.Message)
	case update.ChannelPost != nil:
		return h.processChannelPost(ctx, update.ChannelPost)
	case update.EditedChannelPost != nil:
		return h.processChannelPost(ctx, update.EditedChannelPost)
	case update.InlineQuery != nil:
		return h.processInlineQuery(ctx, update.InlineQuery)
	case update.ChosenInlineResult != nil:
		return h.processChosenInlineResult(ctx, update.ChosenInlineResult)
	case update.CallbackQuery != nil:
		return h.processCallbackQuery(ctx, update.CallbackQuery)
	}
	return nil
}

// parseCommand splits "/cmd@bot payload" at the first whitespace, newline
// included. Commands addressed to another bot come back empty.
func (h *handler) parseCommand(text string) (cmd, payload string) {
	if !strings.HasPrefix(text, "/") {
		return "", ""
	}
	head := text
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		head, payload = text[:i], text[i:]
	}
	if head == "/" {
		return "", ""
	}
	head = head[1:]
	if name, target, ok := strings.Cut(head, "@"); ok {
		if !strings.EqualFold(target, h.cfg.BotUsername) {
			return "", ""
		}
		head = name
	}
	return strings.ToLower(head), strings.TrimSpace(payload)
}

func scopeOf(from *pkgTelegram.User, chat *pkgTelegram.Chat) model.Scope {
	sc := model.Scope{}
	if from != nil {
		sc = model.NewScope(from.ID)
		sc.LanguageCode = from.LanguageCode
	}
	if chat != nil {
		sc.ChatID = chat.ID
	}
	return sc
}

func (h *handler) userConfig(ctx context.Context, userID int64) userconfig.UserConfig {
	cfg, err := h.configs.Get(ctx, userID)
	if err != nil {
		h.l.Warnf(ctx, "telegram handler: user config %d: %v", userID, err)
		return userconfig.Default(userID)
	}
	return cfg
}

func (h *handler) reply(ctx context.Context, chatID int64, text string, markup *pkgTelegram.InlineKeyboardMarkup) error {
	_, err := h.bot.SendHTML(ctx, chatID, text, markup)
	return err
}

func (h *handler) isOwnInlineMessage(msg *pkgTelegram.Message) bool {
	return msg.ViaBot != nil && msg.ViaBot.ID == h.cfg.BotID
}
