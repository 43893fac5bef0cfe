package telegram

import (
	"context"
	"errors"
	"strings"

	"checkbot/internal/checkbox"
	"checkbot/internal/checklist"
	"checkbot/pkg/deeplink"
	pkgTelegram "checkbot/pkg/telegram"
)

const checkHashtag = "#check"

// processMessage routes a chat message to a command or a checklist.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	if msg.Text == "" || msg.Chat == nil {
		return nil
	}
	private := msg.Chat.Type == pkgTelegram.ChatTypePrivate
	group := msg.Chat.Type == pkgTelegram.ChatTypeGroup || msg.Chat.Type == pkgTelegram.ChatTypeSupergroup

	cmd, payload := h.parseCommand(msg.Text)
	switch cmd {
	case "start":
		if strings.HasPrefix(payload, "t_") {
			return h.handleToggle(ctx, msg, payload)
		}
		if private {
			return h.handleMenu(ctx, msg)
		}
		return nil
	case "help":
		if private {
			return h.reply(ctx, msg.Chat.ID, msgHelp, backToMenu())
		}
		return nil
	case "config":
		if private && msg.From != nil {
			text, markup := h.configMenu(h.userConfig(ctx, msg.From.ID), true)
			return h.reply(ctx, msg.Chat.ID, text, markup)
		}
		return nil
	case "check":
		if !private && !group {
			return nil
		}
		if payload == "" {
			return h.reply(ctx, msg.Chat.ID, msgCheckUsage, nil)
		}
		return h.replyWithChecklist(ctx, msg, payload)
	}

	if !private && !group {
		return nil
	}
	if strings.Contains(msg.Text, checkHashtag) {
		return h.replyWithChecklist(ctx, msg, msg.Text)
	}
	if private && msg.From != nil {
		data := h.cb.Parse(msg.Text, h.userConfig(ctx, msg.From.ID).Defaults())
		if data.HasCheckBoxes {
			return h.replyWithChecklist(ctx, msg, msg.Text)
		}
	}
	return nil
}

func (h *handler) handleMenu(ctx context.Context, msg *pkgTelegram.Message) error {
	draft := ""
	if h.cfg.WebAppURL != "" && msg.From != nil {
		var err error
		draft, err = h.uc.MintDraftLocation(ctx, scopeOf(msg.From, msg.Chat))
		if err != nil {
			h.l.Warnf(ctx, "telegram handler: failed to mint draft location: %v", err)
		}
	}
	text, markup := h.mainMenu(draft)
	return h.reply(ctx, msg.Chat.ID, text, markup)
}

// replyWithChecklist sends text as a new checklist. In groups with
// protected content the bot cannot forward messages, so the canonical copy
// goes to the sender's private chat and the group gets a mirror.
func (h *handler) replyWithChecklist(ctx context.Context, msg *pkgTelegram.Message, text string) error {
	if h.isOwnInlineMessage(msg) {
		// answered by the chosen inline result
		return nil
	}
	if msg.From == nil {
		return nil
	}

	input := checklist.CreateInput{SourceChatID: msg.Chat.ID}
	if msg.HasProtectedContent {
		if msg.SenderChat != nil || msg.From.ID < 0 {
			return h.reply(ctx, msg.Chat.ID, msgAnonymousAdmin, nil)
		}
		input.SourceChatID = msg.From.ID
		input.ForeignChatID = msg.Chat.ID
	}
	input.Data = h.cb.Parse(text, h.userConfig(ctx, msg.From.ID).Defaults())

	_, err := h.uc.Create(ctx, scopeOf(msg.From, msg.Chat), input)
	if err == nil || errors.Is(err, checklist.ErrMustStartBot) {
		return nil
	}
	h.l.Warnf(ctx, "telegram handler: create in chat %d failed: %v", msg.Chat.ID, err)
	return h.reply(ctx, msg.Chat.ID, msgCreateFailed, nil)
}

// handleToggle serves a toggle deep link. The chat the user pressed
// /start in is where the checklist gets forwarded to be read.
func (h *handler) handleToggle(ctx context.Context, msg *pkgTelegram.Message, payload string) error {
	if msg.From == nil {
		return nil
	}
	sc := scopeOf(msg.From, msg.Chat)

	out, err := h.uc.Toggle(ctx, sc, checklist.ToggleInput{Parts: deeplink.DecodeParams(payload)})
	if err != nil {
		h.l.Infof(ctx, "telegram handler: toggle by %d refused: %v", sc.UserID, err)
		// Bot API descriptions can carry markup characters
		return h.reply(ctx, msg.Chat.ID, checkbox.EscapeHTML(UserMessage(err)), nil)
	}

	cfg := h.userConfig(ctx, sc.UserID)
	if !out.Private && cfg.ShowEditConfirmation {
		text, markup := toggleConfirmation(out.Data.CheckedBoxStyle, out.Stats)
		_, err := h.bot.SendMessage(ctx, pkgTelegram.SendMessageRequest{
			ChatID:              msg.Chat.ID,
			Text:                text,
			ParseMode:           pkgTelegram.ParseModeHTML,
			DisableNotification: true,
			ReplyMarkup:         markup,
		})
		return err
	}

	if err := h.bot.DeleteMessage(ctx, msg.Chat.ID, msg.MessageID); err != nil {
		h.l.Debugf(ctx, "telegram handler: failed to delete /start message: %v", err)
	}
	return nil
}

// processChannelPost converts channel posts tagged #check in place.
func (h *handler) processChannelPost(ctx context.Context, post *pkgTelegram.Message) error {
	if post.Chat == nil || post.Chat.Type != pkgTelegram.ChatTypeChannel {
		return nil
	}
	if !strings.Contains(post.Text, checkHashtag) || h.isOwnInlineMessage(post) {
		return nil
	}
	return h.uc.ConvertChannelPost(ctx, checklist.ChannelPostInput{
		ChatID:    post.Chat.ID,
		MessageID: post.MessageID,
		Text:      post.Text,
	})
}
