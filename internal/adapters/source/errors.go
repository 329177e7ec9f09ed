package source

import "errors"

// ErrNotDirectory is returned when the data directory path is a file.
var ErrNotDirectory = errors.New("data dir is not a directory")
