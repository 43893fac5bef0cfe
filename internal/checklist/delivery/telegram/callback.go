package telegram

import (
	"context"
	"strconv"

	"checkbot/internal/checkbox"
	"checkbot/internal/userconfig"
	pkgTelegram "checkbot/pkg/telegram"
)

func (h *handler) processCallbackQuery(ctx context.Context, q *pkgTelegram.CallbackQuery) error {
	if q.From == nil {
		return nil
	}
	prefix, action, args := parseCallbackData(q.Data)
	switch prefix {
	case cbMenu:
		return h.handleMenuCallback(ctx, q, action)
	case cbConfig:
		return h.handleConfigCallback(ctx, q, action, args)
	}
	return h.bot.AnswerCallbackQuery(ctx, q.ID, "")
}

func (h *handler) handleMenuCallback(ctx context.Context, q *pkgTelegram.CallbackQuery, action string) error {
	var (
		text   string
		markup *pkgTelegram.InlineKeyboardMarkup
		answer string
	)
	switch action {
	case cbMain:
		draft := ""
		if h.cfg.WebAppURL != "" && q.Message != nil {
			draft, _ = h.uc.MintDraftLocation(ctx, scopeOf(q.From, q.Message.Chat))
		}
		text, markup = h.mainMenu(draft)
		answer = "👋"
	case cbHelp:
		text, markup, answer = msgHelp, backToMenu(), btnHelp
	case cbInfo:
		text, markup, answer = msgInfo, backToMenu(), btnInfo
	default:
		return h.bot.AnswerCallbackQuery(ctx, q.ID, msgInvalidChoice)
	}

	if err := h.editCallbackMessage(ctx, q, text, markup); err != nil {
		return err
	}
	return h.bot.AnswerCallbackQuery(ctx, q.ID, answer)
}

func (h *handler) handleConfigCallback(ctx context.Context, q *pkgTelegram.CallbackQuery, action string, args []string) error {
	cfg := h.userConfig(ctx, q.From.ID)
	private := q.Message != nil && q.Message.Chat != nil && q.Message.Chat.ID == q.From.ID

	switch action {
	case cbOpen:
		text, markup := h.configMenu(cfg, private)
		if err := h.editCallbackMessage(ctx, q, text, markup); err != nil {
			return err
		}
		return h.bot.AnswerCallbackQuery(ctx, q.ID, btnConfig)

	case cbDefCheck, cbDefUncheck:
		choices := checkbox.SuggestedCheckedBoxes
		if action == cbDefUncheck {
			choices = checkbox.SuggestedUncheckedBoxes
		}
		idx, ok := choiceIndex(args, len(choices))
		if !ok {
			return h.bot.AnswerCallbackQuery(ctx, q.ID, msgInvalidChoice)
		}
		picked := choices[idx]
		current := &cfg.DefaultCheckedBox
		if action == cbDefUncheck {
			current = &cfg.DefaultUncheckedBox
		}
		if *current == picked {
			return h.bot.AnswerCallbackQuery(ctx, q.ID, msgAlreadySet)
		}
		*current = picked
		if err := h.configs.Save(ctx, cfg); err != nil {
			return err
		}
		text, markup := h.configMenu(cfg, private)
		if err := h.editCallbackMessage(ctx, q, text, markup); err != nil {
			return err
		}
		return h.bot.AnswerCallbackQuery(ctx, q.ID, msgUpdatedPreference)

	case cbEditConf:
		if len(args) == 0 {
			return h.bot.AnswerCallbackQuery(ctx, q.ID, msgInvalidChoice)
		}
		value := args[0] == "1"
		if cfg.ShowEditConfirmation == value {
			return h.bot.AnswerCallbackQuery(ctx, q.ID, msgAlreadySet)
		}
		cfg.ShowEditConfirmation = value
		if err := h.configs.Save(ctx, cfg); err != nil {
			return err
		}
		if err := h.editAfterEditConf(ctx, q, cfg, private, len(args) > 1 && args[1] == neverShowAgain); err != nil {
			return err
		}
		return h.bot.AnswerCallbackQuery(ctx, q.ID, msgUpdatedPreference)
	}
	return h.bot.AnswerCallbackQuery(ctx, q.ID, msgInvalidChoice)
}

func (h *handler) editAfterEditConf(ctx context.Context, q *pkgTelegram.CallbackQuery, cfg userconfig.UserConfig, private, fromConfirmation bool) error {
	if fromConfirmation {
		return h.editCallbackMessage(ctx, q, msgWillNotShowAgain+"\n<i>"+msgShowAgainInConfig+"</i>", nil)
	}
	text, markup := h.configMenu(cfg, private)
	return h.editCallbackMessage(ctx, q, text, markup)
}

func (h *handler) editCallbackMessage(ctx context.Context, q *pkgTelegram.CallbackQuery, text string, markup *pkgTelegram.InlineKeyboardMarkup) error {
	req := pkgTelegram.EditMessageTextRequest{
		Text:               text,
		ParseMode:          pkgTelegram.ParseModeHTML,
		LinkPreviewOptions: pkgTelegram.NoPreview(),
		ReplyMarkup:        markup,
	}
	switch {
	case q.Message != nil && q.Message.Chat != nil:
		req.ChatID = q.Message.Chat.ID
		req.MessageID = q.Message.MessageID
	case q.InlineMessageID != "":
		req.InlineMessageID = q.InlineMessageID
	default:
		return nil
	}
	return h.bot.EditMessageText(ctx, req)
}

func choiceIndex(args []string, n int) (int, bool) {
	if len(args) == 0 {
		return 0, false
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil || idx < 0 || idx >= n {
		return 0, false
	}
	return idx, true
}
