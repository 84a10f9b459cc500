package probe

import "errors"

var (
	// ErrInvalidConfig is returned for unusable probe settings.
	ErrInvalidConfig = errors.New("invalid probe config")
	// ErrUnreachable is returned when the service cannot be contacted.
	ErrUnreachable = errors.New("service unreachable")
	// ErrViolations is returned when at least one check failed.
	ErrViolations = errors.New("probe found violations")
)
