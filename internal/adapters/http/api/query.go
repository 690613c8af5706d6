package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// topQuery is the validated form of GET /top parameters.
type topQuery struct {
	Column string `validate:"required,max=64"`
	Limit  int    `validate:"gte=1"`
}

// limitParser reads ?limit, defaulting to def and rejecting values above max.
type limitParser struct {
	def int
	max int
}

func newLimitParser(def, maxLimit int) limitParser {
	return limitParser{def: def, max: maxLimit}
}

// parse returns the limit in q. The returned error wraps ErrLimitExceeded
// when the value is valid but above the cap, ErrBadRequest otherwise.
func (p limitParser) parse(q url.Values) (int, error) {
	raw := strings.TrimSpace(q.Get("limit"))
	if raw == "" {
		return p.def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: limit %q is not an integer", ErrBadRequest, raw)
	}
	if err := validate.Var(n, "gte=1"); err != nil {
		return 0, fmt.Errorf("%w: limit must be at least 1", ErrBadRequest)
	}
	if err := validate.Var(n, "lte="+strconv.Itoa(p.max)); err != nil {
		return 0, fmt.Errorf("%w: limit must be at most %d", ErrLimitExceeded, p.max)
	}
	return n, nil
}

func (p limitParser) parseTop(q url.Values) (topQuery, error) {
	n, err := p.parse(q)
	if err != nil {
		return topQuery{}, err
	}
	tq := topQuery{Column: strings.TrimSpace(q.Get("column")), Limit: n}
	if err := validate.Struct(tq); err != nil {
		return topQuery{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return tq, nil
}
