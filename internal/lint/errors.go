package lint

import "errors"

var (
	// ErrUnknownEdition is returned when Options.Edition names a rule set the engine does not ship.
	ErrUnknownEdition = errors.New("unknown lint edition")
	// ErrNegativeLimit is returned when a numeric option is negative.
	ErrNegativeLimit = errors.New("lint limits must be non-negative")
)
