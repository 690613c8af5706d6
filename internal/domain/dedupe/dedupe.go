// Package dedupe reduces registrations to one row per participant identity.
package dedupe

import (
	"context"
	"strings"
	"sync"
)

// Deduper records seen identity keys.
type Deduper interface {
	// SeenAndRecord checks whether key was seen and records it if not.
	// Returns true if key was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, key string) bool

	Size() int64
}

// inMemoryDeduper implements Deduper over a plain set. It never evicts:
// forgetting a key would let a later duplicate displace the first occurrence.
type inMemoryDeduper struct {
	mu   sync.Mutex
	seen map[string]struct{}
	hint int
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{}, d.hint)
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}

// KeyFunc builds the identity key of a row from its cells.
type KeyFunc func(values []string) string

// keySeparator cannot appear in CSV text cells read from the source.
const keySeparator = "\x1f"

// ByIdentifier keys rows on the trimmed cell at idx.
func ByIdentifier(idx int) KeyFunc {
	return func(values []string) string {
		return strings.TrimSpace(cellAt(values, idx))
	}
}

// ByComposite keys rows on several cells joined together.
func ByComposite(idx ...int) KeyFunc {
	return func(values []string) string {
		parts := make([]string, len(idx))
		for i, j := range idx {
			parts[i] = cellAt(values, j)
		}
		return strings.Join(parts, keySeparator)
	}
}

// KeepFirst returns the items whose key was not seen earlier, preserving
// input order, and how many were dropped.
func KeepFirst[T any](ctx context.Context, d Deduper, items []T, key func(T) string) ([]T, int) {
	kept := make([]T, 0, len(items))
	dropped := 0
	for _, it := range items {
		if d.SeenAndRecord(ctx, key(it)) {
			dropped++
			continue
		}
		kept = append(kept, it)
	}
	return kept, dropped
}

func cellAt(values []string, i int) string {
	if i >= 0 && i < len(values) {
		return values[i]
	}
	return ""
}
