package onboarding

import "errors"

// Errors returned by the form setters and command dispatch.
var (
	ErrUnknownField   = errors.New("unknown form field")
	ErrUnknownProduct = errors.New("unknown product")
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingValue   = errors.New("command requires a value")
)
