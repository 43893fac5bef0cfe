package telegram

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is a Bot API call that returned ok=false.
type Error struct {
	Method      string
	Code        int
	Description string
	RetryAfter  int // seconds, set on 429
}

func (e *Error) Error() string {
	return fmt.Sprintf("telegram %s failed (%d): %s", e.Method, e.Code, e.Description)
}

// AsError extracts the Bot API error from err.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsForbidden reports a 403, e.g. a user who never started the bot.
func IsForbidden(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Code == http.StatusForbidden
}

// IsNotModified reports an edit that would leave the message unchanged.
func IsNotModified(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Code == http.StatusBadRequest && strings.Contains(apiErr.Description, "message is not modified")
}
