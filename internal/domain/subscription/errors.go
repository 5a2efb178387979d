package subscription

import "errors"

var (
	ErrNotActive       = errors.New("subscription is not active")
	ErrAlreadyFrozen   = errors.New("subscription is already frozen")
	ErrNotFrozen       = errors.New("subscription is not frozen")
	ErrTerminalStatus  = errors.New("subscription is in a terminal status")
	ErrVisitsExhausted = errors.New("subscription visit quota is exhausted")
)
