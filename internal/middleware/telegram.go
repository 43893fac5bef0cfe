package middleware

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgResponse "checkbot/pkg/response"
)

const HeaderTelegramSecret = "X-Telegram-Bot-Api-Secret-Token"

// maxUpdateSize caps the webhook body read for rate limiting.
const maxUpdateSize = 1 << 20

// WebhookSecret rejects webhook calls that do not carry the secret token
// registered with setWebhook.
func (m Middleware) WebhookSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.cfg.WebhookSecret == "" {
			c.Next()
			return
		}
		got := c.GetHeader(HeaderTelegramSecret)
		if subtle.ConstantTimeCompare([]byte(got), []byte(m.cfg.WebhookSecret)) != 1 {
			m.l.Warnf(c.Request.Context(), "middleware.WebhookSecret: invalid secret from %s", c.ClientIP())
			pkgResponse.Unauthorized(c)
			return
		}
		c.Next()
	}
}

// updateSender picks the sender out of any update kind.
type updateSender struct {
	Message            *senderHolder `json:"message"`
	EditedMessage      *senderHolder `json:"edited_message"`
	InlineQuery        *senderHolder `json:"inline_query"`
	ChosenInlineResult *senderHolder `json:"chosen_inline_result"`
	CallbackQuery      *senderHolder `json:"callback_query"`
}

type senderHolder struct {
	From *struct {
		ID int64 `json:"id"`
	} `json:"from"`
}

func (u updateSender) userID() int64 {
	for _, h := range []*senderHolder{u.Message, u.EditedMessage, u.InlineQuery, u.ChosenInlineResult, u.CallbackQuery} {
		if h != nil && h.From != nil {
			return h.From.ID
		}
	}
	return 0
}

// WebhookRateLimit drops updates of users over the per-minute budget.
// Dropped updates are still acknowledged so Telegram does not redeliver them.
func (m Middleware) WebhookRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.limiter == nil {
			c.Next()
			return
		}
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxUpdateSize))
		if err != nil {
			c.Next()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		var u updateSender
		if err := json.Unmarshal(body, &u); err != nil {
			c.Next()
			return
		}
		if err := m.limiter.Allow(u.userID()); err != nil {
			m.l.Warnf(c.Request.Context(), "middleware.WebhookRateLimit: %v", err)
			c.AbortWithStatusJSON(http.StatusOK, pkgResponse.NewOKResp(map[string]string{"status": "rate_limited"}))
			return
		}
		c.Next()
	}
}
