package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const defaultTimeout = 30 * time.Second

// Bot is the Telegram Bot API client.
type Bot struct {
	token      string
	apiURL     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewBot creates a new Telegram Bot client with the given token.
// Outgoing calls are not throttled until SetRateLimit is called.
func NewBot(token string) *Bot {
	return &Bot{
		token:      token,
		apiURL:     fmt.Sprintf("https://api.telegram.org/bot%s", token),
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Inf, 0),
	}
}

// SetAPIURL overrides the default Telegram API URL for testing purposes.
func (b *Bot) SetAPIURL(url string) {
	b.apiURL = url
}

// SetRateLimit caps outgoing calls to perSec requests per second.
func (b *Bot) SetRateLimit(perSec float64, burst int) {
	if perSec <= 0 {
		b.limiter.SetLimit(rate.Inf)
		return
	}
	b.limiter.SetLimit(rate.Limit(perSec))
	b.limiter.SetBurst(max(burst, 1))
}

// Token returns the bot token; mini-app init data is signed with it.
func (b *Bot) Token() string {
	return b.token
}

// call posts payload to the given method and decodes the result into out
// when out is non-nil.
func (b *Bot) call(ctx context.Context, method string, payload any, out any) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/%s", b.apiURL, method), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", method, err)
	}
	defer resp.Body.Close()

	var apiResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("failed to decode %s response (status %d): %w", method, resp.StatusCode, err)
	}
	if !apiResp.OK {
		apiErr := &Error{Method: method, Code: apiResp.ErrorCode, Description: apiResp.Description}
		if apiErr.Code == 0 {
			apiErr.Code = resp.StatusCode
		}
		if apiResp.Parameters != nil {
			apiErr.RetryAfter = apiResp.Parameters.RetryAfter
		}
		return apiErr
	}

	if out == nil || len(apiResp.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(apiResp.Result, out); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", method, err)
	}
	return nil
}

// SetWebhook registers the webhook URL with Telegram. Updates are delivered
// with secretToken in the X-Telegram-Bot-Api-Secret-Token header.
func (b *Bot) SetWebhook(ctx context.Context, webhookURL, secretToken string) error {
	payload := SetWebhookRequest{
		URL:            webhookURL,
		SecretToken:    secretToken,
		AllowedUpdates: AllowedUpdates,
	}
	if err := b.call(ctx, "setWebhook", payload, nil); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}
	return nil
}

// DeleteWebhook removes the webhook registration.
func (b *Bot) DeleteWebhook(ctx context.Context) error {
	return b.call(ctx, "deleteWebhook", struct{}{}, nil)
}

// GetMe returns the bot's own user.
func (b *Bot) GetMe(ctx context.Context) (*User, error) {
	var me User
	if err := b.call(ctx, "getMe", struct{}{}, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

// SendMessage sends a text message and returns it.
func (b *Bot) SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error) {
	var msg Message
	if err := b.call(ctx, "sendMessage", req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SendHTML sends a message in HTML parse mode with an optional keyboard.
func (b *Bot) SendHTML(ctx context.Context, chatID int64, text string, markup *InlineKeyboardMarkup) (*Message, error) {
	return b.SendMessage(ctx, SendMessageRequest{
		ChatID:             chatID,
		Text:               text,
		ParseMode:          ParseModeHTML,
		LinkPreviewOptions: noPreview,
		ReplyMarkup:        markup,
	})
}

// EditMessageText edits a chat message or, when InlineMessageID is set, an
// inline message. An unchanged text is not an error.
func (b *Bot) EditMessageText(ctx context.Context, req EditMessageTextRequest) error {
	err := b.call(ctx, "editMessageText", req, nil)
	if IsNotModified(err) {
		return nil
	}
	return err
}

// ForwardMessage forwards messageID from fromChatID into chatID silently.
func (b *Bot) ForwardMessage(ctx context.Context, chatID, fromChatID, messageID int64) (*Message, error) {
	var msg Message
	payload := ForwardMessageRequest{
		ChatID:              chatID,
		FromChatID:          fromChatID,
		MessageID:           messageID,
		DisableNotification: true,
	}
	if err := b.call(ctx, "forwardMessage", payload, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DeleteMessage deletes a message.
func (b *Bot) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	return b.call(ctx, "deleteMessage", map[string]int64{"chat_id": chatID, "message_id": messageID}, nil)
}

// GetChat returns information about a chat.
func (b *Bot) GetChat(ctx context.Context, chatID int64) (*Chat, error) {
	var chat Chat
	if err := b.call(ctx, "getChat", map[string]int64{"chat_id": chatID}, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// GetChatMember returns the membership of userID in chatID.
func (b *Bot) GetChatMember(ctx context.Context, chatID, userID int64) (*ChatMember, error) {
	var member ChatMember
	if err := b.call(ctx, "getChatMember", map[string]int64{"chat_id": chatID, "user_id": userID}, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// AnswerInlineQuery sends results for an inline query.
func (b *Bot) AnswerInlineQuery(ctx context.Context, req AnswerInlineQueryRequest) error {
	return b.call(ctx, "answerInlineQuery", req, nil)
}

// AnswerCallbackQuery acknowledges a callback button press.
func (b *Bot) AnswerCallbackQuery(ctx context.Context, callbackQueryID, text string) error {
	return b.call(ctx, "answerCallbackQuery", AnswerCallbackQueryRequest{CallbackQueryID: callbackQueryID, Text: text}, nil)
}

// SetMyCommands replaces the bot's command list.
func (b *Bot) SetMyCommands(ctx context.Context, commands []BotCommand) error {
	return b.call(ctx, "setMyCommands", map[string]any{"commands": commands}, nil)
}

// SetMyDescription sets the text shown in an empty chat with the bot.
func (b *Bot) SetMyDescription(ctx context.Context, description string) error {
	return b.call(ctx, "setMyDescription", map[string]string{"description": description}, nil)
}

// SetMyShortDescription sets the text shown on the bot's profile page.
func (b *Bot) SetMyShortDescription(ctx context.Context, description string) error {
	return b.call(ctx, "setMyShortDescription", map[string]string{"short_description": description}, nil)
}

// SetMyName sets the bot's display name.
func (b *Bot) SetMyName(ctx context.Context, name string) error {
	return b.call(ctx, "setMyName", map[string]string{"name": name}, nil)
}

// SetMyDefaultAdministratorRights sets the rights suggested when the bot is
// added as an administrator to channels (forChannels) or groups.
func (b *Bot) SetMyDefaultAdministratorRights(ctx context.Context, rights ChatAdministratorRights, forChannels bool) error {
	return b.call(ctx, "setMyDefaultAdministratorRights", map[string]any{
		"rights":       rights,
		"for_channels": forChannels,
	}, nil)
}
