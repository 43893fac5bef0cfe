package usecase

import (
	"context"

	"checkbot/internal/checklist"
	"checkbot/internal/location"
	"checkbot/internal/model"
	"checkbot/internal/permission"
)

// Toggle decodes the link, checks the caller may edit, re-reads the
// canonical copy and flips one line in every copy.
//
// There is no compare-and-swap: two toggles racing on the same checklist
// may lose one update.
func (uc *implUseCase) Toggle(ctx context.Context, sc model.Scope, input checklist.ToggleInput) (checklist.ToggleOutput, error) {
	loc, line, err := uc.codec.Decode(input.Parts)
	if err != nil {
		return checklist.ToggleOutput{}, err
	}
	if line == location.NoLine {
		return checklist.ToggleOutput{}, location.ErrParse
	}

	if err := permission.Authorize(ctx, uc.bot, sc.UserID, loc); err != nil {
		uc.l.Infof(ctx, "checklist.usecase.Toggle: user=%d denied on %d: %v", sc.UserID, loc.TargetChatID(), err)
		return checklist.ToggleOutput{}, err
	}

	text, err := uc.reader.FetchCurrentText(ctx, sc.ChatID, loc)
	if err != nil {
		return checklist.ToggleOutput{}, err
	}

	cfg := uc.userConfig(ctx, sc.UserID)
	data := uc.cb.Parse(text, cfg.Defaults())
	if err := uc.cb.Toggle(&data, line); err != nil {
		return checklist.ToggleOutput{}, err
	}

	if err := uc.publish(ctx, loc, data); err != nil {
		return checklist.ToggleOutput{}, err
	}

	uc.l.Debugf(ctx, "checklist.usecase.Toggle: user=%d source=%d/%d line=%d checked=%t",
		sc.UserID, loc.SourceChatID, loc.SourceMessageID, line, data.Lines[line].IsChecked)

	return checklist.ToggleOutput{
		Location: loc,
		Data:     data,
		Line:     line,
		Stats:    uc.cb.Stats(data),
		Private:  loc.IsPrivate(sc.ChatID),
	}, nil
}
