package repository

import "github.com/okian/thaidash/pkg/logger"

// Option applies a configuration option to the CSVStore.
type Option func(*CSVStore)

// WithLogger sets the logger used for load and save events.
func WithLogger(l logger.Logger) Option {
	return func(s *CSVStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithComma sets the field delimiter. Defaults to ','.
func WithComma(r rune) Option {
	return func(s *CSVStore) {
		if r != 0 && r != '"' && r != '\r' && r != '\n' {
			s.comma = r
		}
	}
}
