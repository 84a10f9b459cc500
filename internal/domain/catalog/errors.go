package catalog

import "errors"

// Sentinel kinds for catalog loading.
var (
	ErrNoSource  = errors.New("no dataset source configured")
	ErrRead      = errors.New("read dataset failed")
	ErrMalformed = errors.New("malformed dataset")
)
