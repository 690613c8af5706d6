// Package cache memoizes pipeline results by input fingerprint.
//
// Results are immutable once produced, so a cached *pipeline.Result can be
// shared between requests. Correctness never depends on a hit: a miss simply
// runs the pipeline again, which yields the same output for the same input.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/okian/thaidash/internal/domain/model"
	"github.com/okian/thaidash/internal/domain/pipeline"
	"github.com/okian/thaidash/pkg/metrics"
)

// ErrInvalidSize is returned for a non-positive capacity.
var ErrInvalidSize = errors.New("cache size must be positive")

// Separators keep ("ab","c") and ("a","bc") from hashing alike.
const (
	unitSep   = "\x1f"
	recordSep = "\x1e"
)

// Fingerprint hashes a raw table plus any run parameters that change the
// result (reference date, top-N, ...).
func Fingerprint(t *model.Table, params ...string) uint64 {
	d := xxhash.New()
	for _, p := range params {
		_, _ = d.WriteString(p)
		_, _ = d.WriteString(unitSep)
	}
	_, _ = d.WriteString(recordSep)
	if t == nil {
		return d.Sum64()
	}
	for _, h := range t.Header {
		_, _ = d.WriteString(h)
		_, _ = d.WriteString(unitSep)
	}
	for _, row := range t.Rows {
		_, _ = d.WriteString(recordSep)
		for _, c := range row {
			_, _ = d.WriteString(c)
			_, _ = d.WriteString(unitSep)
		}
	}
	return d.Sum64()
}

// ResultCache is a bounded LRU of pipeline results. Safe for concurrent use.
type ResultCache struct {
	lru      *lru.Cache[uint64, *pipeline.Result]
	inflight singleflight.Group
}

// New creates a cache holding at most size results.
func New(size int) (*ResultCache, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cache.new: %d: %w", size, ErrInvalidSize)
	}
	c, err := lru.New[uint64, *pipeline.Result](size)
	if err != nil {
		return nil, fmt.Errorf("cache.new: %w", err)
	}
	return &ResultCache{lru: c}, nil
}

// Get returns the result cached under key.
func (c *ResultCache) Get(key uint64) (*pipeline.Result, bool) {
	res, ok := c.lru.Get(key)
	if ok {
		metrics.RecordCacheHit()
	} else {
		metrics.RecordCacheMiss()
	}
	return res, ok
}

// Add stores res under key, evicting the least recently used entry when full.
func (c *ResultCache) Add(key uint64, res *pipeline.Result) {
	c.lru.Add(key, res)
	metrics.UpdateCacheEntries(c.lru.Len())
}

// GetOrRun returns the cached result for key or runs fn and caches its
// result. Concurrent callers with the same key share one run of fn, which
// is detached from any single caller's cancellation; a caller whose ctx ends
// stops waiting without failing the others. Errors are not cached. hit is
// false only for the caller whose fn ran.
func (c *ResultCache) GetOrRun(ctx context.Context, key uint64, fn func(context.Context) (*pipeline.Result, error)) (res *pipeline.Result, hit bool, err error) {
	if res, ok := c.Get(key); ok {
		return res, true, nil
	}
	ran := false
	ch := c.inflight.DoChan(strconv.FormatUint(key, 16), func() (any, error) {
		ran = true
		r, err := fn(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.Add(key, r)
		return r, nil
	})
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case out := <-ch:
		if out.Err != nil {
			return nil, false, out.Err
		}
		return out.Val.(*pipeline.Result), !ran, nil
	}
}

// Len returns the number of cached results.
func (c *ResultCache) Len() int { return c.lru.Len() }

// Purge drops every cached result.
func (c *ResultCache) Purge() {
	c.lru.Purge()
	metrics.UpdateCacheEntries(0)
}
