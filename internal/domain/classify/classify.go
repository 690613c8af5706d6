// Package classify derives categorical features from normalized fields.
package classify

import (
	"strings"

	"github.com/okian/thaidash/internal/domain/normalize"
	"github.com/okian/thaidash/internal/domain/types"
)

// Price tier upper bounds in baht, inclusive.
const (
	budgetMax   = 400
	economyMax  = 600
	standardMax = 900
	premiumMax  = 1200
)

// Age group lower bounds in years, inclusive.
const (
	adultAge  = 18
	age25     = 25
	age35     = 35
	age45     = 45
	seniorAge = 55
)

// PriceTier buckets a ticket price. A nil price is Unknown.
func PriceTier(price *float64) types.PriceTier {
	if price == nil {
		return types.PriceUnknown
	}
	p := *price
	switch {
	case p == 0:
		return types.PriceFree
	case p <= budgetMax:
		return types.PriceBudget
	case p <= economyMax:
		return types.PriceEconomy
	case p <= standardMax:
		return types.PriceStandard
	case p <= premiumMax:
		return types.PricePremium
	default:
		return types.PriceVIP
	}
}

// AgeGroup buckets an age in whole years. A nil age is Unknown.
func AgeGroup(age *int) types.AgeGroup {
	if age == nil {
		return types.AgeUnknown
	}
	a := *age
	switch {
	case a < adultAge:
		return types.AgeUnder18
	case a < age25:
		return types.Age18To24
	case a < age35:
		return types.Age25To34
	case a < age45:
		return types.Age35To44
	case a < seniorAge:
		return types.Age45To54
	default:
		return types.Age55Plus
	}
}

// sukTemSip is the campaign keyword that outranks every generic rule.
const sukTemSip = "สุขเต็มสิบ"

type eventRule struct {
	matches  func(name string) bool
	category types.EventCategory
}

// eventRules are evaluated in order; the first match wins.
var eventRules = []eventRule{
	{containsAny(sukTemSip), types.EventSukTemSip},
	{func(n string) bool {
		return strings.Contains(n, "marathon") && !strings.Contains(n, "half") && !strings.Contains(n, "mini")
	}, types.EventMarathon},
	{containsAny("half"), types.EventHalfMarathon},
	{containsAny("mini"), types.EventMiniMarathon},
	{containsAny("10k", "10 km"), types.Event10K},
	{containsAny("5k", "5 km"), types.Event5K},
	{containsAny("fun run"), types.EventFunRun},
	{containsAny("trail"), types.EventTrailRun},
	{containsAny("charity"), types.EventCharityRun},
}

// EventCategory classifies an event by keywords in its name.
func EventCategory(eventName string) types.EventCategory {
	name := strings.ToLower(eventName)
	for _, r := range eventRules {
		if r.matches(name) {
			return r.category
		}
	}
	return types.EventOther
}

// Distance extracts a distance label from ticket text and casts it into the
// ordered domain. The label is returned as well, since values such as "24K"
// fall into the null slot of the category.
func Distance(ticketTypeName string) (string, types.DistanceCategory) {
	label := normalize.Distance(ticketTypeName)
	return label, types.ParseDistanceCategory(label)
}

func containsAny(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}
