package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	// ErrSourceUnavailable means the input could not be found or read.
	// Callers fall back to sample data and must say so.
	ErrSourceUnavailable = errors.New("registration source unavailable")
	ErrEmptySource       = errors.New("registration source has no header row")
	ErrMalformed         = errors.New("malformed registration csv")
	ErrNilDataset        = errors.New("nil dataset")
)
