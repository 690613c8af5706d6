// Package repository reads raw registrations from CSV and writes cleaned
// datasets back to CSV.
package repository

import (
	"context"
	"io"

	"github.com/okian/thaidash/internal/domain/model"
)

// Source provides raw registration tables.
type Source interface {
	// Load reads the table at path. A missing or unreadable file yields an
	// error matching ErrSourceUnavailable.
	Load(ctx context.Context, path string) (*model.Table, error)
	// Read parses a table from r, e.g. an uploaded file.
	Read(ctx context.Context, r io.Reader) (*model.Table, error)
}

// Sink persists cleaned datasets.
type Sink interface {
	// Write renders ds to w. Identical datasets produce identical bytes.
	Write(ctx context.Context, w io.Writer, ds *model.Dataset) error
	// Save writes ds to path, replacing any existing file.
	Save(ctx context.Context, path string, ds *model.Dataset) error
}
