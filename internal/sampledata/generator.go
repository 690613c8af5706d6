// Package sampledata generates a deterministic synthetic registration table.
// It stands in for the real input when that is unavailable, and callers must
// label anything computed from it as synthetic.
package sampledata

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/okian/thaidash/internal/domain/model"
)

// Generator defaults and value ranges.
const (
	DefaultRows        = 500
	DefaultSeed        = 42
	defaultMissingRate = 0.10
	defaultRepeatRate  = 0.15

	registrationWindowDays = 90
	minAge                 = 18
	maxAge                 = 70
	maxBirthDay            = 28
	monthsPerYear          = 12
	postalCodeMin          = 10000
	postalCodeSpan         = 1000
	cancelCheckRows        = 1024
)

// Header is the column order of generated tables.
var Header = []string{
	model.ColID,
	model.ColRegistrationID,
	model.ColGender,
	model.ColBirthDate,
	model.ColEventName,
	model.ColIsVirtual,
	model.ColTicketTypeName,
	model.ColTicketTypePrice,
	model.ColProvince,
	model.ColRegisterDate,
	model.ColShirtType,
	model.ColShirtSize,
	model.ColCountry,
	model.ColCity,
	model.ColPostalCode,
}

// registrationNamespace scopes the name-based registration ids.
var registrationNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://thaidash.local/sample/registrations"))

// Generator builds synthetic registrations.
type Generator struct {
	rows        int
	seed        uint64
	missingRate float64
	repeatRate  float64
	start       time.Time
}

// New creates a Generator with configuration options.
func New(opts ...Option) *Generator {
	g := &Generator{
		rows:        DefaultRows,
		seed:        DefaultSeed,
		missingRate: defaultMissingRate,
		repeatRate:  defaultRepeatRate,
		start:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type person struct {
	id, gender, birth string
}

// Table generates the registrations. The output depends only on the
// generator's options.
func (g *Generator) Table(ctx context.Context) (*model.Table, error) {
	r := rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))
	rows := make([][]string, 0, g.rows)
	people := make([]person, 0, g.rows)

	for i := 0; i < g.rows; i++ {
		if i%cancelCheckRows == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("sampledata.table: %w", err)
			}
		}

		var p person
		if len(people) > 0 && r.Float64() < g.repeatRate {
			p = people[r.IntN(len(people))]
		} else {
			birth := time.Date(
				g.start.Year()-(minAge+r.IntN(maxAge-minAge)),
				time.Month(1+r.IntN(monthsPerYear)),
				1+r.IntN(maxBirthDay-1),
				0, 0, 0, 0, time.UTC,
			)
			p = person{
				id:     fmt.Sprintf("ID_%06d", len(people)),
				gender: pick(r, genders),
				birth:  birth.Format(time.DateOnly),
			}
			people = append(people, p)
		}

		registered := g.start.AddDate(0, 0, r.IntN(registrationWindowDays))
		city := cities[r.IntN(len(cities))]
		postal := strconv.Itoa(postalCodeMin + r.IntN(postalCodeSpan))
		if r.Float64() < g.missingRate {
			city, postal = "", ""
		}

		rows = append(rows, []string{
			p.id,
			uuid.NewSHA1(registrationNamespace, []byte(strconv.FormatUint(g.seed, 10)+"/"+strconv.Itoa(i))).String(),
			p.gender,
			p.birth,
			eventNames[r.IntN(len(eventNames))],
			pick(r, virtual),
			ticketTypes[r.IntN(len(ticketTypes))],
			strconv.Itoa(pick(r, ticketPrices)),
			pick(r, provinces),
			registered.Format("2006/01/02"),
			shirtTypes[r.IntN(len(shirtTypes))],
			shirtSizes[r.IntN(len(shirtSizes))],
			"Thailand",
			city,
			postal,
		})
	}
	return model.NewTable(append([]string(nil), Header...), rows), nil
}

// pick draws one value by weight.
func pick[T any](r *rand.Rand, choices []weighted[T]) T {
	var total float64
	for _, c := range choices {
		total += c.weight
	}
	x := r.Float64() * total
	for _, c := range choices {
		if x < c.weight {
			return c.value
		}
		x -= c.weight
	}
	return choices[len(choices)-1].value
}
