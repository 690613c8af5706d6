// Package types contains the closed category sets shared across the application.
//
// Every set carries an explicit default variant so classification never fails:
// unrecognized input maps to Unknown, Other or LGBTQ depending on the field.
package types

// CategoryCount is one row of a top-N ranking.
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Gender is the normalized participant gender.
type Gender int

// Gender values. GenderLGBTQ is also the default for unmapped input.
const (
	GenderLGBTQ Gender = iota
	GenderMale
	GenderFemale
)

var genderLabels = [...]string{
	GenderLGBTQ:  "LGBTQ",
	GenderMale:   "Male",
	GenderFemale: "Female",
}

func (g Gender) String() string {
	if g < 0 || int(g) >= len(genderLabels) {
		return genderLabels[GenderLGBTQ]
	}
	return genderLabels[g]
}

// Genders lists every gender in presentation order.
func Genders() []Gender { return []Gender{GenderMale, GenderFemale, GenderLGBTQ} }

// AgeGroup is an ordered age bucket.
type AgeGroup int

// Age groups in ascending order; AgeUnknown sorts last.
const (
	AgeUnder18 AgeGroup = iota
	Age18To24
	Age25To34
	Age35To44
	Age45To54
	Age55Plus
	AgeUnknown
)

var ageGroupLabels = [...]string{
	AgeUnder18: "<18",
	Age18To24:  "18-24",
	Age25To34:  "25-34",
	Age35To44:  "35-44",
	Age45To54:  "45-54",
	Age55Plus:  "55+",
	AgeUnknown: "Unknown",
}

func (a AgeGroup) String() string {
	if a < 0 || int(a) >= len(ageGroupLabels) {
		return ageGroupLabels[AgeUnknown]
	}
	return ageGroupLabels[a]
}

// AgeGroups lists every age group in order.
func AgeGroups() []AgeGroup {
	return []AgeGroup{AgeUnder18, Age18To24, Age25To34, Age35To44, Age45To54, Age55Plus, AgeUnknown}
}

// PriceTier is an ordered ticket price bucket.
type PriceTier int

// Price tiers in ascending order; PriceUnknown sorts last.
const (
	PriceFree PriceTier = iota
	PriceBudget
	PriceEconomy
	PriceStandard
	PricePremium
	PriceVIP
	PriceUnknown
)

var priceTierLabels = [...]string{
	PriceFree:     "Free",
	PriceBudget:   "Budget (≤400฿)",
	PriceEconomy:  "Economy (401-600฿)",
	PriceStandard: "Standard (601-900฿)",
	PricePremium:  "Premium (901-1200฿)",
	PriceVIP:      "VIP (>1200฿)",
	PriceUnknown:  "Unknown",
}

func (p PriceTier) String() string {
	if p < 0 || int(p) >= len(priceTierLabels) {
		return priceTierLabels[PriceUnknown]
	}
	return priceTierLabels[p]
}

// PriceTiers lists every tier in order.
func PriceTiers() []PriceTier {
	return []PriceTier{PriceFree, PriceBudget, PriceEconomy, PriceStandard, PricePremium, PriceVIP, PriceUnknown}
}

// DistanceCategory is the ordered race distance bucket.
//
// DistanceNone is the null slot: an extracted distance that is valid but
// outside the fixed domain (e.g. "24K", "3K") lands here, not in DistanceOther.
type DistanceCategory int

// Distance categories in order. DistanceNone is the zero value.
const (
	DistanceNone DistanceCategory = iota
	Distance5K
	Distance10K
	DistanceHalf
	DistanceFull
	DistanceOther
)

var distanceLabels = [...]string{
	DistanceNone:  "",
	Distance5K:    "5K",
	Distance10K:   "10K",
	DistanceHalf:  "21.1K",
	DistanceFull:  "42.2K",
	DistanceOther: "Other",
}

func (d DistanceCategory) String() string {
	if d < 0 || int(d) >= len(distanceLabels) {
		return ""
	}
	return distanceLabels[d]
}

// Valid reports whether d is inside the ordered domain.
func (d DistanceCategory) Valid() bool { return d >= Distance5K && d <= DistanceOther }

// DistanceCategories lists the ordered domain, excluding the null slot.
func DistanceCategories() []DistanceCategory {
	return []DistanceCategory{Distance5K, Distance10K, DistanceHalf, DistanceFull, DistanceOther}
}

// ParseDistanceCategory casts an extracted distance label into the domain.
// Labels outside the domain return DistanceNone.
func ParseDistanceCategory(label string) DistanceCategory {
	for _, d := range DistanceCategories() {
		if distanceLabels[d] == label {
			return d
		}
	}
	return DistanceNone
}

// EventCategory is derived from keywords in the event name.
type EventCategory int

// Event categories, listed in matching priority order. EventOther is the default.
const (
	EventOther EventCategory = iota
	EventSukTemSip
	EventMarathon
	EventHalfMarathon
	EventMiniMarathon
	Event10K
	Event5K
	EventFunRun
	EventTrailRun
	EventCharityRun
)

var eventCategoryLabels = [...]string{
	EventOther:        "Other",
	EventSukTemSip:    "สุขเต็มสิบ",
	EventMarathon:     "Marathon",
	EventHalfMarathon: "Half Marathon",
	EventMiniMarathon: "Mini Marathon",
	Event10K:          "10K",
	Event5K:           "5K",
	EventFunRun:       "Fun Run",
	EventTrailRun:     "Trail Run",
	EventCharityRun:   "Charity Run",
}

func (e EventCategory) String() string {
	if e < 0 || int(e) >= len(eventCategoryLabels) {
		return eventCategoryLabels[EventOther]
	}
	return eventCategoryLabels[e]
}

// EventCategories lists every event category.
func EventCategories() []EventCategory {
	return []EventCategory{
		EventSukTemSip, EventMarathon, EventHalfMarathon, EventMiniMarathon,
		Event10K, Event5K, EventFunRun, EventTrailRun, EventCharityRun, EventOther,
	}
}
