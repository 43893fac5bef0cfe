package checklist

import "errors"

// Domain-specific errors for the checklist package.
var (
	ErrReadFailure    = errors.New("failed to read checklist")
	ErrTransport      = errors.New("failed to deliver checklist")
	ErrMustStartBot   = errors.New("user must start the bot first")
	ErrAlreadyCreated = errors.New("checklist already created")
	ErrEmptyChecklist = errors.New("checklist has no lines")
)
