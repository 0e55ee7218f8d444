package engine

import "errors"

var (
	// ErrTurnTimeout means the wall-clock budget for the whole turn was
	// exceeded. Fatal for the turn; retries live in the reflection gate
	// (content) and the inference gateway (transport) only.
	ErrTurnTimeout = errors.New("turn timeout exceeded")

	// ErrStepLimitExceeded means the global step budget ran out. It signals
	// a routing or loop bug, not a user problem.
	ErrStepLimitExceeded = errors.New("step limit exceeded")

	// ErrInvalidState means the inbound state failed entry validation.
	ErrInvalidState = errors.New("invalid conversation state")
)
