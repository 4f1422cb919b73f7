package command

import "errors"

// Domain errors for the command package.
var (
	// ErrInvalidPercentage is returned when a brightness percentage is
	// outside 0-100.
	ErrInvalidPercentage = errors.New("command: percentage must be between 0 and 100")
)
