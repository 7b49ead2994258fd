package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoButtons is returned by Choose when no buttons are offered.
	ErrNoButtons = errors.New("tui: no buttons to choose from")
)
