package modernizer

import "errors"

// ErrMissingStructure is returned when a document is not a recognizable
// tox environment/dependency matrix. No mutation or write happens after it.
var ErrMissingStructure = errors.New("missing required structure")
