package fsutil

import "errors"

// ErrEmptyOutputPath is returned when a write is requested without a destination.
var ErrEmptyOutputPath = errors.New("output path cannot be empty")
