package usecase

import (
	"context"
	"fmt"

	"checkbot/internal/checklist"
	"checkbot/internal/location"
	"checkbot/internal/model"
	"checkbot/internal/permission"
	"checkbot/pkg/deeplink"
)

// Read returns the checklist as currently posted.
func (uc *implUseCase) Read(ctx context.Context, sc model.Scope, input checklist.ReadInput) (checklist.ReadOutput, error) {
	loc, err := uc.decodeParam(input.Location)
	if err != nil {
		return checklist.ReadOutput{}, err
	}
	if err := permission.Authorize(ctx, uc.bot, sc.UserID, loc); err != nil {
		return checklist.ReadOutput{}, err
	}

	text, err := uc.reader.FetchCurrentText(ctx, sc.ChatID, loc)
	if err != nil {
		return checklist.ReadOutput{}, err
	}
	cfg := uc.userConfig(ctx, sc.UserID)
	return checklist.ReadOutput{Data: uc.cb.Parse(text, cfg.Defaults())}, nil
}

// Update re-renders the supplied lines with the user's styles.
func (uc *implUseCase) Update(ctx context.Context, sc model.Scope, input checklist.UpdateInput) error {
	loc, err := uc.decodeParam(input.Location)
	if err != nil {
		return err
	}
	if err := permission.Authorize(ctx, uc.bot, sc.UserID, loc); err != nil {
		return err
	}

	data, err := dataFromLines(input.Lines, uc.userConfig(ctx, sc.UserID))
	if err != nil {
		return err
	}
	if err := uc.publish(ctx, loc, data); err != nil {
		return err
	}
	uc.l.Infof(ctx, "checklist.usecase.Update: user=%d source=%d/%d lines=%d",
		sc.UserID, loc.SourceChatID, loc.SourceMessageID, len(data.Lines))
	return nil
}

// CreateFromWebApp sends a checklist into a location minted by
// MintDraftLocation. Locations of sent checklists are refused.
func (uc *implUseCase) CreateFromWebApp(ctx context.Context, sc model.Scope, input checklist.UpdateInput) (checklist.CreateOutput, error) {
	loc, err := uc.decodeParam(input.Location)
	if err != nil {
		return checklist.CreateOutput{}, err
	}
	if loc.SourceMessageID != 0 {
		return checklist.CreateOutput{}, checklist.ErrAlreadyCreated
	}
	if err := permission.Authorize(ctx, uc.bot, sc.UserID, loc); err != nil {
		return checklist.CreateOutput{}, err
	}

	data, err := dataFromLines(input.Lines, uc.userConfig(ctx, sc.UserID))
	if err != nil {
		return checklist.CreateOutput{}, err
	}
	return uc.Create(ctx, sc, checklist.CreateInput{
		Data:            data,
		SourceChatID:    loc.SourceChatID,
		ForeignChatID:   loc.ForeignChatID,
		InlineMessageID: loc.InlineMessageID,
		IsPersonal:      loc.IsPersonal,
		Salt:            loc.Salt,
	})
}

// MintDraftLocation returns the escaped parameter of an unsent checklist in
// the caller's chat.
func (uc *implUseCase) MintDraftLocation(ctx context.Context, sc model.Scope) (string, error) {
	salt, err := location.NewSalt()
	if err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	tok, err := uc.codec.Encode(location.Location{SourceChatID: sc.ChatID, Salt: salt})
	if err != nil {
		return "", err
	}
	return deeplink.EncodeParams(tok.Parts())
}
