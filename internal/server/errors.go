package server

import "errors"

var (
	errSessionNotFound = errors.New("session not found")
	errBadBody         = errors.New("request body is not a valid command")
)
