package usecase

import (
	"context"
	"fmt"

	"checkbot/internal/checkbox"
	"checkbot/internal/checklist"
	"checkbot/internal/location"
	"checkbot/internal/model"
	"checkbot/pkg/telegram"
)

const (
	msgStartForInline    = "You must start the bot before using it in inline mode"
	msgStartForProtected = "You must start the bot before using it in groups with protected content"
	msgRecreate          = "📋 Use this text to recreate the checklist"
	msgClickToStart      = "🤖 Click here to start"
)

// Create sends placeholders first, because toggle links need the message
// ids, then edits every copy with the linked rendering.
func (uc *implUseCase) Create(ctx context.Context, sc model.Scope, input checklist.CreateInput) (checklist.CreateOutput, error) {
	if len(input.Data.Lines) == 0 {
		return checklist.CreateOutput{}, checklist.ErrEmptyChecklist
	}

	salt := input.Salt
	if salt == "" {
		var err error
		if salt, err = location.NewSalt(); err != nil {
			return checklist.CreateOutput{}, fmt.Errorf("failed to generate salt: %w", err)
		}
	}
	loc := location.Location{
		SourceChatID:    input.SourceChatID,
		ForeignChatID:   input.ForeignChatID,
		InlineMessageID: input.InlineMessageID,
		IsPersonal:      input.IsPersonal,
		Salt:            salt,
	}

	placeholder := uc.cb.RenderRich(input.Data, checkbox.NoURL)
	msg, err := uc.sendPlaceholder(ctx, loc.SourceChatID, placeholder)
	if err != nil {
		return checklist.CreateOutput{}, uc.recreate(ctx, loc, input.Data, err)
	}
	loc.SourceMessageID = msg.MessageID

	if loc.ForeignChatID != 0 {
		foreign, err := uc.sendPlaceholder(ctx, loc.ForeignChatID, placeholder)
		if err != nil {
			return checklist.CreateOutput{}, fmt.Errorf("%w: %w", checklist.ErrTransport, err)
		}
		loc.ForeignMessageID = foreign.MessageID
	}

	if err := uc.publish(ctx, loc, input.Data); err != nil {
		return checklist.CreateOutput{}, err
	}

	uc.l.Infof(ctx, "checklist.usecase.Create: user=%d source=%d/%d foreign=%d inline=%t",
		sc.UserID, loc.SourceChatID, loc.SourceMessageID, loc.ForeignChatID, loc.HasInline())
	return checklist.CreateOutput{Location: loc}, nil
}

// recreate handles a failed canonical send. A 403 means the user never
// started the bot; if the checklist was meant for an inline message or a
// protected group, the plain text is left there with a start button.
func (uc *implUseCase) recreate(ctx context.Context, loc location.Location, data checkbox.Data, cause error) error {
	if !telegram.IsForbidden(cause) || (!loc.HasInline() && loc.ForeignChatID == 0) {
		return fmt.Errorf("%w: %w", checklist.ErrTransport, cause)
	}

	headline := msgStartForProtected
	if loc.HasInline() {
		headline = msgStartForInline
	}
	text := fmt.Sprintf("%s!\n<i>%s</i>:\n\n<code>%s</code>",
		headline, msgRecreate, checkbox.EscapeHTML(uc.cb.RenderPlain(data)))
	markup := telegram.NewKeyboard([]telegram.InlineKeyboardButton{
		{Text: msgClickToStart, URL: "https://t.me/" + uc.cfg.BotUsername},
	})

	var err error
	if loc.HasInline() {
		err = uc.bot.EditMessageText(ctx, telegram.EditMessageTextRequest{
			InlineMessageID: loc.InlineMessageID,
			Text:            text,
			ParseMode:       telegram.ParseModeHTML,
			ReplyMarkup:     markup,
		})
	} else {
		_, err = uc.bot.SendMessage(ctx, telegram.SendMessageRequest{
			ChatID:      loc.ForeignChatID,
			Text:        text,
			ParseMode:   telegram.ParseModeHTML,
			ReplyMarkup: markup,
		})
	}
	if err != nil {
		uc.l.Warnf(ctx, "checklist.usecase.recreate: failed to post recreation text: %v", err)
	}
	return checklist.ErrMustStartBot
}

// ConvertChannelPost edits a "#check" channel post into a checklist. The
// post itself is the canonical copy.
func (uc *implUseCase) ConvertChannelPost(ctx context.Context, input checklist.ChannelPostInput) error {
	data := uc.cb.Parse(input.Text, checkbox.Defaults{})
	loc := location.Location{
		SourceChatID:    input.ChatID,
		SourceMessageID: input.MessageID,
		Salt:            checklist.ChannelSalt,
	}
	if err := uc.publish(ctx, loc, data); err != nil {
		return err
	}
	uc.l.Infof(ctx, "checklist.usecase.ConvertChannelPost: chat=%d message=%d", input.ChatID, input.MessageID)
	return nil
}
