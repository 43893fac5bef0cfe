package telegram

import (
	"errors"

	"checkbot/internal/checkbox"
	"checkbot/internal/checklist"
	"checkbot/internal/location"
	"checkbot/internal/permission"
	pkgTelegram "checkbot/pkg/telegram"
)

const (
	msgParseError       = "Error parsing command..."
	msgNotEnoughRights  = "You don't have enough rights to edit this checklist"
	msgNotAdministrator = "Only administrators can edit checklists in this channel"
	msgPersonal         = "This is a personal checklist, only its creator can edit it"
	msgInvalidIndex     = "Invalid checkbox idx"
	msgReadFailure      = "There was an error while getting the contents of the checklist"
	msgCreateFailed     = "There was an error creating the checklist"
	msgEmptyChecklist   = "The checklist is empty"
	msgGenericError     = "Something went wrong, please try again"
)

// UserMessage maps an orchestrator error to the text shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, location.ErrParse):
		return msgParseError
	case errors.Is(err, permission.ErrNotEnoughRights):
		return msgNotEnoughRights
	case errors.Is(err, permission.ErrNotAdministrator):
		return msgNotAdministrator
	case errors.Is(err, permission.ErrPersonalChecklist):
		return msgPersonal
	case errors.Is(err, checkbox.ErrInvalidIndex):
		return msgInvalidIndex
	case errors.Is(err, checklist.ErrReadFailure):
		var tgErr *pkgTelegram.Error
		if errors.As(err, &tgErr) && tgErr.Description != "" {
			return msgReadFailure + ": " + tgErr.Description
		}
		return msgReadFailure
	case errors.Is(err, checklist.ErrEmptyChecklist):
		return msgEmptyChecklist
	case errors.Is(err, checklist.ErrTransport), errors.Is(err, checklist.ErrMustStartBot):
		return msgCreateFailed
	default:
		return msgGenericError
	}
}
