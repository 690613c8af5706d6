package pipeline

import (
	"strconv"
	"time"

	"github.com/okian/thaidash/internal/domain/classify"
	"github.com/okian/thaidash/internal/domain/model"
	"github.com/okian/thaidash/internal/domain/normalize"
)

// row is the working state of one record while features are derived.
type row struct {
	rec  *model.Record
	cols map[string]int
	ref  time.Time
	null func(col string)
}

func (r *row) cell(col string) string {
	return rawCell(r.rec.Values, r.cols[col])
}

func (r *row) set(col, v string) {
	r.rec.Values[r.cols[col]] = v
}

// feature derives one output from required source columns. A feature runs
// iff every required column is present. Features with a column name add a
// derived output column; the others rewrite their source column in place.
type feature struct {
	name     string
	column   string
	requires []string
	derive   func(*row)
	format   func(*model.Record) string
}

// features is applied in order; later entries may read what earlier ones set.
var features = []feature{
	{
		name:     "event_name",
		requires: []string{model.ColEventName},
		derive: func(r *row) {
			r.set(model.ColEventName, normalize.EventName(r.cell(model.ColEventName)))
		},
	},
	{
		name:     "ticket_price",
		requires: []string{model.ColTicketTypePrice},
		derive: func(r *row) {
			p, ok := normalize.Price(r.cell(model.ColTicketTypePrice))
			if !ok {
				r.null(model.ColTicketTypePrice)
			}
			r.rec.TicketPrice, r.rec.PriceParsed = p, ok
			r.set(model.ColTicketTypePrice, normalize.FormatPrice(p))
		},
	},
	{
		name:     "register_date",
		requires: []string{model.ColRegisterDate},
		derive: func(r *row) {
			r.rec.RegisterDate = parseDateCell(r, model.ColRegisterDate)
		},
	},
	{
		name:     "birth_date",
		requires: []string{model.ColBirthDate},
		derive: func(r *row) {
			r.rec.BirthDate = parseDateCell(r, model.ColBirthDate)
		},
	},
	{
		name:     "gender",
		requires: []string{model.ColGender},
		derive: func(r *row) {
			r.rec.Gender = normalize.Gender(r.cell(model.ColGender))
			r.set(model.ColGender, r.rec.Gender.String())
		},
	},
	{
		name:     "registration_year",
		column:   model.ColRegistrationYear,
		requires: []string{model.ColRegisterDate},
		format:   registerDatePart(func(t time.Time) string { return strconv.Itoa(t.Year()) }),
	},
	{
		name:     "registration_month",
		column:   model.ColRegistrationMonth,
		requires: []string{model.ColRegisterDate},
		format:   registerDatePart(func(t time.Time) string { return strconv.Itoa(int(t.Month())) }),
	},
	{
		name:     "registration_day",
		column:   model.ColRegistrationDay,
		requires: []string{model.ColRegisterDate},
		format:   registerDatePart(func(t time.Time) string { return strconv.Itoa(t.Day()) }),
	},
	{
		name:     "registration_weekday",
		column:   model.ColRegistrationWeekday,
		requires: []string{model.ColRegisterDate},
		format:   registerDatePart(func(t time.Time) string { return t.Weekday().String() }),
	},
	{
		name:     "registration_week",
		column:   model.ColRegistrationWeek,
		requires: []string{model.ColRegisterDate},
		format: registerDatePart(func(t time.Time) string {
			_, w := t.ISOWeek()
			return strconv.Itoa(w)
		}),
	},
	{
		name:     "price_tier",
		column:   model.ColPriceTier,
		requires: []string{model.ColTicketTypePrice},
		derive: func(r *row) {
			price := r.rec.TicketPrice
			r.rec.PriceTier = classify.PriceTier(&price)
		},
		format: func(rec *model.Record) string { return rec.PriceTier.String() },
	},
	{
		name:     "age",
		column:   model.ColAge,
		requires: []string{model.ColBirthDate},
		derive: func(r *row) {
			if r.rec.BirthDate == nil {
				return
			}
			if a, ok := normalize.Age(*r.rec.BirthDate, r.ref); ok {
				r.rec.Age = &a
			}
		},
		format: func(rec *model.Record) string {
			if rec.Age == nil {
				return ""
			}
			return strconv.Itoa(*rec.Age)
		},
	},
	{
		name:     "age_group",
		column:   model.ColAgeGroup,
		requires: []string{model.ColBirthDate},
		derive: func(r *row) {
			r.rec.AgeGroup = classify.AgeGroup(r.rec.Age)
		},
		format: func(rec *model.Record) string { return rec.AgeGroup.String() },
	},
	{
		name:     "event_category",
		column:   model.ColEventCategory,
		requires: []string{model.ColEventName},
		derive: func(r *row) {
			r.rec.EventCategory = classify.EventCategory(r.cell(model.ColEventName))
		},
		format: func(rec *model.Record) string { return rec.EventCategory.String() },
	},
	{
		name:     "distance",
		column:   model.ColDistance,
		requires: []string{model.ColTicketTypeName},
		derive: func(r *row) {
			r.rec.Distance, r.rec.DistanceCategory = classify.Distance(r.cell(model.ColTicketTypeName))
		},
		format: func(rec *model.Record) string { return rec.Distance },
	},
	// Reads what the distance feature extracted; labels outside the closed
	// set stay in the distance column only.
	{
		name:     "distance_category",
		column:   model.ColDistanceCategory,
		requires: []string{model.ColTicketTypeName},
		format:   func(rec *model.Record) string { return rec.DistanceCategory.String() },
	},
}

// plan splits the feature table into what can run against header.
func plan(has func(string) bool) (active []feature, skipped []string) {
	for _, f := range features {
		ok := true
		for _, col := range f.requires {
			if !has(col) {
				ok = false
				break
			}
		}
		if ok {
			active = append(active, f)
		} else {
			skipped = append(skipped, f.name)
		}
	}
	return active, skipped
}

func parseDateCell(r *row, col string) *time.Time {
	t, ok := normalize.Date(r.cell(col))
	if !ok {
		r.null(col)
		r.set(col, "")
		return nil
	}
	r.set(col, normalize.FormatDate(t))
	return &t
}

func registerDatePart(f func(time.Time) string) func(*model.Record) string {
	return func(rec *model.Record) string {
		if rec.RegisterDate == nil {
			return ""
		}
		return f(*rec.RegisterDate)
	}
}
