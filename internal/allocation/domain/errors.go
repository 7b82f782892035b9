package allocation

import "errors"

var (
	// ErrUnknownTier is returned when a slot references a tier the
	// capacity table has no entry for. This is a configuration fault,
	// distinct from the normal "no viable location" outcome.
	ErrUnknownTier = errors.New("allocation: unknown tier")
	// ErrNonPositiveWeight is returned when the required weight is zero
	// or negative.
	ErrNonPositiveWeight = errors.New("allocation: required weight must be positive")
)
