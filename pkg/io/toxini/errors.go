package toxini

import "errors"

// ErrInvalidSyntax is returned when the text cannot be parsed as INI.
var ErrInvalidSyntax = errors.New("invalid ini syntax")
