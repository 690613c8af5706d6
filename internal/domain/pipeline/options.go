package pipeline

import (
	"time"

	"github.com/okian/thaidash/pkg/logger"
)

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for run summaries.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithClock sets the reference clock used to compute ages.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithTopEvents sets how many events the snapshot reports as top events.
func WithTopEvents(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.topEvents = n
		}
	}
}
