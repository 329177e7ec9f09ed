package simulate

import "errors"

var (
	// ErrAlreadyCleared is returned when the player already holds credit for
	// the candidate entry.
	ErrAlreadyCleared = errors.New("entry already cleared")
	// ErrUnknownEntry is returned when the candidate entry is not registered.
	ErrUnknownEntry = errors.New("unknown entry")
)
