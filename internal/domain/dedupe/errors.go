package dedupe

import "errors"

// ErrInvalidValue is returned for input that is not a single JSON value.
var ErrInvalidValue = errors.New("invalid json value")
