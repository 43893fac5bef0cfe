package http

import (
	"errors"
	"net/http"

	"checkbot/internal/checklist"
	tgDelivery "checkbot/internal/checklist/delivery/telegram"
	"checkbot/internal/permission"
)

const msgBadRequest = "Bad request"

var errMissingUser = errors.New("user missing")

// mapError translates use-case errors into a status and the same text the
// bot would reply with.
func (h *handler) mapError(err error) (int, string) {
	switch {
	case errors.Is(err, permission.ErrNotEnoughRights),
		errors.Is(err, permission.ErrNotAdministrator),
		errors.Is(err, permission.ErrPersonalChecklist):
		return http.StatusForbidden, tgDelivery.UserMessage(err)
	case errors.Is(err, checklist.ErrAlreadyCreated):
		return http.StatusConflict, "This checklist was already sent"
	case errors.Is(err, checklist.ErrTransport):
		return http.StatusBadGateway, tgDelivery.UserMessage(err)
	default:
		return http.StatusBadRequest, tgDelivery.UserMessage(err)
	}
}
