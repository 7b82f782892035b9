package picking

import "errors"

var (
	ErrEmptyID          = errors.New("picking: empty id")
	ErrEmptyDepartment  = errors.New("picking: empty department")
	ErrMissingReference = errors.New("picking: missing receipt or location reference")
	ErrInvalidWeight    = errors.New("picking: weight must be positive")
	ErrNotOpen          = errors.New("picking: pick order is not open")
	ErrNotFound         = errors.New("picking: pick order not found")
)
