package normalize

import (
	"strings"

	"github.com/okian/thaidash/internal/domain/types"
	"golang.org/x/text/unicode/norm"
)

// genderTerms maps lower-cased, trimmed gender text to a gender.
// "unknown" and "other" deliberately land in LGBTQ alongside identity terms.
var genderTerms = map[string]types.Gender{
	"male":        types.GenderMale,
	"m":           types.GenderMale,
	"ชาย":         types.GenderMale,
	"female":      types.GenderFemale,
	"f":           types.GenderFemale,
	"หญิง":        types.GenderFemale,
	"unknown":     types.GenderLGBTQ,
	"other":       types.GenderLGBTQ,
	"lgbtq":       types.GenderLGBTQ,
	"lgbt":        types.GenderLGBTQ,
	"lgbtq+":      types.GenderLGBTQ,
	"queer":       types.GenderLGBTQ,
	"non-binary":  types.GenderLGBTQ,
	"nb":          types.GenderLGBTQ,
	"genderqueer": types.GenderLGBTQ,
	"transgender": types.GenderLGBTQ,
	"trans":       types.GenderLGBTQ,
}

// Gender maps free-text gender to Male, Female or LGBTQ.
// Anything not in the table, blank included, is LGBTQ.
func Gender(raw string) types.Gender {
	key := strings.TrimSpace(strings.ToLower(norm.NFC.String(raw)))
	if g, ok := genderTerms[key]; ok {
		return g
	}
	return types.GenderLGBTQ
}

// EventName trims an event name and puts it in NFC form so that composed
// and decomposed spellings of the same Thai name count as one event.
func EventName(raw string) string {
	return strings.TrimSpace(norm.NFC.String(raw))
}
