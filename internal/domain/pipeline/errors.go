package pipeline

import "errors"

// Sentinel error kinds for this package.
var (
	ErrNilInput = errors.New("nil input table")
)
