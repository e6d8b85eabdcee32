package services

import "errors"

var (
	// ErrInvalidState rejects an operation that doesn't apply in the current state.
	ErrInvalidState    = errors.New("invalid state")
	ErrUnknownPlatform = errors.New("unknown platform")
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrRewriteFailed is recoverable: the cycle continues with a fallback caption.
	ErrRewriteFailed = errors.New("caption rewrite failed")

	// ErrNoLinkedAccounts skips the post step but keeps the loop alive.
	ErrNoLinkedAccounts = errors.New("no linked accounts")

	// ErrCycleFailed halts the loop until it is restarted.
	ErrCycleFailed = errors.New("cycle failed")
)
