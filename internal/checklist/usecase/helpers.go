package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"checkbot/internal/checkbox"
	"checkbot/internal/checklist"
	"checkbot/internal/location"
	"checkbot/internal/userconfig"
	"checkbot/pkg/deeplink"
	"checkbot/pkg/telegram"
)

const editButtonText = "✏️"

// publish renders data with toggle links for loc and edits every copy.
// Only the canonical edit can fail the call.
func (uc *implUseCase) publish(ctx context.Context, loc location.Location, data checkbox.Data) error {
	tok, err := uc.codec.Encode(loc)
	if err != nil {
		return fmt.Errorf("failed to encode location: %w", err)
	}
	param, err := deeplink.EncodeParams(tok.Parts())
	if err != nil {
		return fmt.Errorf("failed to encode location: %w", err)
	}

	text := uc.cb.RenderRich(data, uc.toggleURL(tok))
	startApp := telegram.InlineKeyboardButton{
		Text: editButtonText,
		URL:  deeplink.StartAppURL(uc.cfg.BotUsername, uc.cfg.WebAppName, param),
	}

	// mini app buttons only work in private chats
	canonical := startApp
	if loc.SourceChatID > 0 && uc.cfg.WebAppURL != "" {
		canonical = uc.webAppButton(param, data)
	}

	err = uc.bot.EditMessageText(ctx, telegram.EditMessageTextRequest{
		ChatID:             loc.SourceChatID,
		MessageID:          loc.SourceMessageID,
		Text:               text,
		ParseMode:          telegram.ParseModeHTML,
		LinkPreviewOptions: telegram.NoPreview(),
		ReplyMarkup:        telegram.NewKeyboard([]telegram.InlineKeyboardButton{canonical}),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", checklist.ErrTransport, err)
	}

	uc.mirror(ctx, loc, text, startApp)
	return nil
}

// mirror edits the inline and foreign copies concurrently. They may have
// been deleted, so failures are only logged.
func (uc *implUseCase) mirror(ctx context.Context, loc location.Location, text string, button telegram.InlineKeyboardButton) {
	markup := telegram.NewKeyboard([]telegram.InlineKeyboardButton{button})

	var g errgroup.Group
	if loc.HasInline() {
		g.Go(func() error {
			return uc.bot.EditMessageText(ctx, telegram.EditMessageTextRequest{
				InlineMessageID:    loc.InlineMessageID,
				Text:               text,
				ParseMode:          telegram.ParseModeHTML,
				LinkPreviewOptions: telegram.NoPreview(),
				ReplyMarkup:        markup,
			})
		})
	}
	if loc.HasForeign() {
		g.Go(func() error {
			return uc.bot.EditMessageText(ctx, telegram.EditMessageTextRequest{
				ChatID:             loc.ForeignChatID,
				MessageID:          loc.ForeignMessageID,
				Text:               text,
				ParseMode:          telegram.ParseModeHTML,
				LinkPreviewOptions: telegram.NoPreview(),
				ReplyMarkup:        markup,
			})
		})
	}
	if err := g.Wait(); err != nil {
		uc.l.Debugf(ctx, "checklist.usecase.mirror: mirror edit failed: %v", err)
	}
}

func (uc *implUseCase) toggleURL(tok location.Token) checkbox.ToggleURLFunc {
	return func(idx int) string {
		url, err := deeplink.EncodeDeepLinkURL(uc.cfg.BotUsername, tok.ToggleParts(idx))
		if err != nil {
			return ""
		}
		return url
	}
}

func (uc *implUseCase) webAppButton(param string, data checkbox.Data) telegram.InlineKeyboardButton {
	list, err := json.Marshal(data)
	if err != nil {
		list = []byte("{}")
	}
	return telegram.InlineKeyboardButton{
		Text:   editButtonText,
		WebApp: &telegram.WebAppInfo{URL: deeplink.WebAppURL(uc.cfg.WebAppURL, param, string(list))},
	}
}

func (uc *implUseCase) sendPlaceholder(ctx context.Context, chatID int64, text string) (*telegram.Message, error) {
	return uc.bot.SendMessage(ctx, telegram.SendMessageRequest{
		ChatID:             chatID,
		Text:               text,
		ParseMode:          telegram.ParseModeHTML,
		LinkPreviewOptions: telegram.NoPreview(),
	})
}

// userConfig never fails; a broken store degrades to the defaults.
func (uc *implUseCase) userConfig(ctx context.Context, userID int64) userconfig.UserConfig {
	cfg, err := uc.configs.Get(ctx, userID)
	if err != nil {
		uc.l.Warnf(ctx, "checklist.usecase.userConfig: user=%d: %v", userID, err)
		return userconfig.Default(userID)
	}
	return cfg
}

// dataFromLines rebuilds checklist data from lines edited in the mini app,
// using the user's preferred styles.
func dataFromLines(lines []checkbox.Line, cfg userconfig.UserConfig) (checkbox.Data, error) {
	if len(lines) == 0 {
		return checkbox.Data{}, checklist.ErrEmptyChecklist
	}
	data := checkbox.Data{
		Lines:             make([]checkbox.Line, len(lines)),
		CheckedBoxStyle:   cfg.DefaultCheckedBox,
		UncheckedBoxStyle: cfg.DefaultUncheckedBox,
	}
	for i, l := range lines {
		if !l.HasCheckBox {
			l.IsChecked = false
		}
		data.HasCheckBoxes = data.HasCheckBoxes || l.HasCheckBox
		data.Lines[i] = l
	}
	return data, nil
}

// decodeParam verifies an escaped location parameter.
func (uc *implUseCase) decodeParam(param string) (location.Location, error) {
	loc, _, err := uc.codec.Decode(deeplink.DecodeParams(param))
	return loc, err
}
