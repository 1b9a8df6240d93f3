package engine

import (
	"sort"

	"github.com/yukirin/cplist/internal/model"
	"github.com/yukirin/cplist/internal/venue"
)

// Group is one venue section of a shopping list: all booths sharing a
// venue bucket, under its display label.
type Group struct {
	Label  string
	Type   model.VenueType
	Booths []model.BoothRecord
}

// PinnedLabel heads the pinned section in grouped output.
const PinnedLabel = "📌 置顶"

// Arrange returns booths in display order: pinned booths first in their
// stored relative order, then the rest sorted by SortBooths.
func Arrange(booths []model.BoothRecord) []model.BoothRecord {
	pinned, rest := SplitPinned(booths)
	SortBooths(rest)
	return append(pinned, rest...)
}

// GroupBooths builds the display sections of a list: a leading pinned
// group holding pinned booths in stored order, then the venue groups of
// the sorted remainder.
func GroupBooths(booths []model.BoothRecord) []Group {
	pinned, rest := SplitPinned(booths)
	SortBooths(rest)

	groups := GroupByVenue(rest)
	if len(pinned) > 0 {
		groups = append([]Group{{Label: PinnedLabel, Booths: pinned}}, groups...)
	}
	return groups
}

// GroupByVenue buckets booths by venue and returns the groups in venue
// order: doujin halls by numeral, enterprise halls by letter, creative
// stalls last. Booth order within a group follows the input slice, so
// callers sort before grouping.
func GroupByVenue(booths []model.BoothRecord) []Group {
	type bucket struct {
		group Group
		order int
		seq   int
	}

	byKey := make(map[string]*bucket)
	var buckets []*bucket

	for _, b := range booths {
		key := venue.Key(b.Type, b.Number)
		bk, ok := byKey[key]
		if !ok {
			bk = &bucket{
				group: Group{
					Label: venue.Label(b.Type, b.Number),
					Type:  b.Type,
				},
				order: venue.Order(b.Type, b.Number),
				seq:   len(buckets),
			}
			byKey[key] = bk
			buckets = append(buckets, bk)
		}
		bk.group.Booths = append(bk.group.Booths, b)
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		if buckets[i].order != buckets[j].order {
			return buckets[i].order < buckets[j].order
		}
		return buckets[i].seq < buckets[j].seq
	})

	groups := make([]Group, 0, len(buckets))
	for _, bk := range buckets {
		groups = append(groups, bk.group)
	}
	return groups
}
