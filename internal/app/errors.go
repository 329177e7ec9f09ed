package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotReady       = errors.New("board not built yet")
	ErrPlayerNotFound = errors.New("player not found")
	ErrEntryNotFound  = errors.New("entry not found")
)
