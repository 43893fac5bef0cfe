package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"checkbot/internal/checkbox"
	"checkbot/internal/checklist"
	"checkbot/internal/model"
	pkgTelegram "checkbot/pkg/telegram"
)

// processInlineQuery offers a shared and a personal checklist. Links are
// only generated once the result is chosen and its inline message id known.
func (h *handler) processInlineQuery(ctx context.Context, q *pkgTelegram.InlineQuery) error {
	if q.Query == "" || q.From == nil {
		return nil
	}
	data := h.cb.ParseInlineQuery(q.Query, h.userConfig(ctx, q.From.ID).Defaults())

	content := pkgTelegram.InputTextMessageContent{
		MessageText:        h.cb.RenderRich(data, checkbox.NoURL),
		ParseMode:          pkgTelegram.ParseModeHTML,
		LinkPreviewOptions: pkgTelegram.NoPreview(),
	}
	markup := pkgTelegram.NewKeyboard([]pkgTelegram.InlineKeyboardButton{
		{Text: msgGeneratingLinks, URL: fmt.Sprintf("tg://user?id=%d", h.cfg.BotID)},
	})
	description := h.cb.RenderPlain(data)

	req := pkgTelegram.AnswerInlineQueryRequest{
		InlineQueryID: q.ID,
		Results: []pkgTelegram.InlineQueryResultArticle{
			{
				Type:                "article",
				ID:                  resultShared,
				Title:               msgSharedChecklist,
				Description:         description,
				InputMessageContent: content,
				ReplyMarkup:         markup,
			},
			{
				Type:                "article",
				ID:                  resultPersonal,
				Title:               msgPersonalChecklist,
				Description:         description,
				InputMessageContent: content,
				ReplyMarkup:         markup,
			},
		},
		IsPersonal: true,
	}
	if len(q.Query) >= inlineQueryTooLong {
		req.Button = &pkgTelegram.InlineQueryResultsButton{Text: msgQueryTooLong, StartParameter: startInlineTooLong}
	}
	return h.bot.AnswerInlineQuery(ctx, req)
}

// processChosenInlineResult turns a sent inline result into a live
// checklist. The canonical copy goes to the sender's private chat.
func (h *handler) processChosenInlineResult(ctx context.Context, r *pkgTelegram.ChosenInlineResult) error {
	if !strings.HasPrefix(r.ResultID, "checklist") || r.From == nil {
		return nil
	}
	if r.InlineMessageID == "" {
		return fmt.Errorf("chosen result %s has no inline message id", r.ResultID)
	}

	data := h.cb.ParseInlineQuery(r.Query, h.userConfig(ctx, r.From.ID).Defaults())
	_, err := h.uc.Create(ctx, model.NewScope(r.From.ID), checklist.CreateInput{
		Data:            data,
		SourceChatID:    r.From.ID,
		InlineMessageID: r.InlineMessageID,
		IsPersonal:      r.ResultID == resultPersonal,
	})
	if err == nil || errors.Is(err, checklist.ErrMustStartBot) {
		return nil
	}

	h.l.Warnf(ctx, "telegram handler: inline create for %d failed: %v", r.From.ID, err)
	return h.bot.EditMessageText(ctx, pkgTelegram.EditMessageTextRequest{
		InlineMessageID: r.InlineMessageID,
		Text:            msgCreateFailed,
	})
}
