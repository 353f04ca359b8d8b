package oep2

import "errors"

// ErrInvalidRegistry is returned when the registry is not a mapping of
// repository names to metadata mappings.
var ErrInvalidRegistry = errors.New("invalid repository registry")
