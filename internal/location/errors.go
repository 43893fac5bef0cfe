package location

import "errors"

var (
	// ErrParse covers every malformed or forged token. Causes are not
	// distinguished on purpose.
	ErrParse = errors.New("failed to parse checklist token")

	ErrMissingSecret = errors.New("checklist hmac secret is not configured")
	ErrInvalidSalt   = errors.New("salt must be 3 url-safe characters")
)
