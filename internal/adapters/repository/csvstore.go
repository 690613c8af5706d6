package repository

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/okian/thaidash/internal/domain/model"
	"github.com/okian/thaidash/pkg/logger"
	"github.com/okian/thaidash/pkg/metrics"
	"golang.org/x/text/encoding/charmap"
)

// cancelCheckRows is how often Write polls the context.
const cancelCheckRows = 1024

// CSVStore is a flat-file Source and Sink.
//
// Input is read as UTF-8; a file that is not valid UTF-8 is decoded as
// Latin-1 instead. Output is always UTF-8 with '\n' line endings.
type CSVStore struct {
	logger logger.Logger
	comma  rune
}

var (
	_ Source = (*CSVStore)(nil)
	_ Sink   = (*CSVStore)(nil)
)

// NewCSVStore creates a CSVStore with configuration options.
func NewCSVStore(opts ...Option) *CSVStore {
	s := &CSVStore{comma: ','}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the registration file at path.
func (s *CSVStore) Load(ctx context.Context, path string) (*model.Table, error) {
	const op = "repository.load"
	f, err := os.Open(path)
	if err != nil {
		metrics.RecordErrorByComponent("repository", "open")
		return nil, fmt.Errorf("%s: %w: %w", op, ErrSourceUnavailable, err)
	}
	defer f.Close()

	t, err := s.Read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, path, err)
	}
	if s.logger != nil {
		s.logger.Info(ctx, "registrations loaded",
			logger.String("path", path),
			logger.Int("rows", t.Len()),
			logger.Int("columns", len(t.Header)),
		)
	}
	return t, nil
}

// Read parses a registration table from r.
func (s *CSVStore) Read(ctx context.Context, r io.Reader) (*model.Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		metrics.RecordErrorByComponent("repository", "read")
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !utf8.Valid(raw) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: latin-1 decode: %w", ErrMalformed, err)
		}
		if s.logger != nil {
			s.logger.Warn(ctx, "input is not valid UTF-8; decoded as Latin-1")
		}
		raw = decoded
	}

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.Comma = s.comma
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, ErrEmptySource)
	}
	if err != nil {
		metrics.RecordErrorByComponent("repository", "parse")
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			metrics.RecordErrorByComponent("repository", "parse")
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		rows = append(rows, rec)
	}
	return model.NewTable(header, rows), nil
}

// Write renders ds as CSV: the header is ds.Columns(), then one line per
// record in dataset order.
func (s *CSVStore) Write(ctx context.Context, w io.Writer, ds *model.Dataset) error {
	if ds == nil {
		return ErrNilDataset
	}
	cw := csv.NewWriter(w)
	cw.Comma = s.comma
	if err := cw.Write(ds.Columns()); err != nil {
		return err
	}
	for i := range ds.Records {
		if i%cancelCheckRows == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := cw.Write(ds.Row(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save writes ds to path. The file is written under a temporary name in
// the same directory and renamed into place.
func (s *CSVStore) Save(ctx context.Context, path string, ds *model.Dataset) error {
	const op = "repository.save"
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	tmp, err := os.CreateTemp(dir, ".thaidash-*.csv")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer os.Remove(tmp.Name())

	if err := s.Write(ctx, tmp, ds); err != nil {
		tmp.Close()
		metrics.RecordErrorByComponent("repository", "write")
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if s.logger != nil {
		s.logger.Info(ctx, "cleaned dataset saved", logger.String("path", path), logger.Int("rows", ds.Len()))
	}
	return nil
}
