// Package engine orders booths and groups them by venue for display and
// export. The ordering is total and deterministic: equal keys fall through
// to the next criterion, and the final sort is stable.
package engine

import (
	"sort"
	"strings"

	"github.com/yukirin/cplist/internal/model"
	"github.com/yukirin/cplist/internal/venue"
)

// typeRank orders venue types relative to each other. Unknown types sink
// to the end.
func typeRank(t model.VenueType) int {
	switch t {
	case model.VenueDoujin:
		return 0
	case model.VenueEnterprise:
		return 1
	case model.VenueCreative:
		return 2
	}
	return 3
}

// SortBooths orders booths in place: by venue type, then by venue bucket
// (hall for doujin, letter for enterprise), then by manual position where
// one is set, and finally by the booth number itself. The sort is stable
// so equal booths keep input order.
//
// Pinned booths must not pass through here. They keep their stored order;
// callers split them off with SplitPinned and sort only the rest.
func SortBooths(booths []model.BoothRecord) {
	sort.SliceStable(booths, func(i, j int) bool {
		return compareBooths(&booths[i], &booths[j]) < 0
	})
}

// SplitPinned separates pinned booths, in their stored relative order,
// from the rest.
func SplitPinned(booths []model.BoothRecord) (pinned, rest []model.BoothRecord) {
	for _, b := range booths {
		if b.Pinned {
			pinned = append(pinned, b)
		} else {
			rest = append(rest, b)
		}
	}
	return pinned, rest
}

func compareBooths(a, b *model.BoothRecord) int {
	if ra, rb := typeRank(a.Type), typeRank(b.Type); ra != rb {
		return ra - rb
	}

	switch a.Type {
	case model.VenueDoujin:
		ka, kb := venue.ParseDoujinNumber(a.Number), venue.ParseDoujinNumber(b.Number)
		if ka.Hall != kb.Hall {
			return ka.Hall - kb.Hall
		}
		if c := compareManual(a.ManualOrder, b.ManualOrder); c != 0 {
			return c
		}
		if c := strings.Compare(ka.Letter, kb.Letter); c != 0 {
			return c
		}
		return ka.Number - kb.Number
	case model.VenueEnterprise:
		ka, kb := venue.ParseEnterpriseNumber(a.Number), venue.ParseEnterpriseNumber(b.Number)
		if c := strings.Compare(ka.Letter, kb.Letter); c != 0 {
			return c
		}
		if c := compareManual(a.ManualOrder, b.ManualOrder); c != 0 {
			return c
		}
		return ka.Number - kb.Number
	case model.VenueCreative:
		if c := compareManual(a.ManualOrder, b.ManualOrder); c != 0 {
			return c
		}
		return venue.ParseCreativeNumber(a.Number) - venue.ParseCreativeNumber(b.Number)
	}

	if c := compareManual(a.ManualOrder, b.ManualOrder); c != 0 {
		return c
	}
	return strings.Compare(a.Number, b.Number)
}

// compareManual orders by manual position within a bucket. A booth with a
// manual position sorts before one without; two manual positions compare
// numerically; two unset positions are equal.
func compareManual(a, b *int) int {
	switch {
	case a != nil && b != nil:
		return *a - *b
	case a != nil:
		return -1
	case b != nil:
		return 1
	}
	return 0
}
