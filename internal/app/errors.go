package service

import "errors"

// ErrNotStarted is returned by queries issued before Start succeeds.
var ErrNotStarted = errors.New("catalog service not started")
