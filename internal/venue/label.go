package venue

import (
	"fmt"

	"github.com/yukirin/cplist/internal/model"
)

// Key returns the venue bucket identifier for a booth: doujin booths bucket
// by their leading numeral run, enterprise booths by their hall letter, and
// creative booths share a single bucket.
func Key(t model.VenueType, number string) string {
	switch t {
	case model.VenueDoujin:
		if hall := LeadingNumerals(number); hall != "" {
			return "doujin_" + hall
		}
		return "doujin_other"
	case model.VenueEnterprise:
		if letter, ok := EnterpriseLetter(number); ok {
			return "enterprise_" + letter
		}
		return "enterprise_other"
	default:
		return string(t)
	}
}

// Order returns the display rank of a booth's bucket: doujin halls by
// numeral value, then enterprise halls by letter, then creative, then
// anything unrecognized.
func Order(t model.VenueType, number string) int {
	switch t {
	case model.VenueDoujin:
		if hall := LeadingNumerals(number); hall != "" {
			return ParseNumerals(hall)
		}
		return 999
	case model.VenueEnterprise:
		if letter, ok := EnterpriseLetter(number); ok {
			return 1000 + int(letter[0])
		}
		return 1999
	case model.VenueCreative:
		return 2000
	default:
		return 3000
	}
}

// Label returns the human-readable hall name for a booth.
//
// For enterprise booths the hall lettering is inverted on-site: booths
// numbered CPA* sit in hall 6B and CPB* in hall 6A. The mapping mirrors the
// venue's own signage; do not straighten it out.
func Label(t model.VenueType, number string) string {
	switch t {
	case model.VenueDoujin:
		if hall := LeadingNumerals(number); hall != "" {
			return hall + "馆"
		}
		return "同人馆"
	case model.VenueEnterprise:
		letter, ok := EnterpriseLetter(number)
		if !ok {
			return "企业馆"
		}
		switch letter {
		case "A":
			return "6B馆"
		case "B":
			return "6A馆"
		default:
			return fmt.Sprintf("6%s馆", letter)
		}
	case model.VenueCreative:
		return "创摊"
	default:
		return ""
	}
}

// TypeLabel returns the display name of a venue type.
func TypeLabel(t model.VenueType) string {
	switch t {
	case model.VenueDoujin:
		return "同人馆"
	case model.VenueEnterprise:
		return "企业馆"
	case model.VenueCreative:
		return "创摊"
	default:
		return string(t)
	}
}
