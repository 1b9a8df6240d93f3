package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukirin/cplist/internal/model"
)

func booth(t model.VenueType, number string) model.BoothRecord {
	return model.BoothRecord{Type: t, Number: number}
}

func numbers(booths []model.BoothRecord) []string {
	out := make([]string, len(booths))
	for i, b := range booths {
		out[i] = b.Number
	}
	return out
}

func intPtr(v int) *int { return &v }

func TestSortBoothsTotalOrder(t *testing.T) {
	booths := []model.BoothRecord{
		booth(model.VenueCreative, "创12"),
		booth(model.VenueEnterprise, "CPB03"),
		booth(model.VenueDoujin, "贰A-01"),
		booth(model.VenueDoujin, "壹B-05"),
		booth(model.VenueEnterprise, "CPA10"),
		booth(model.VenueDoujin, "壹A-12"),
		booth(model.VenueDoujin, "壹A-03"),
		booth(model.VenueCreative, "创03"),
	}

	SortBooths(booths)

	assert.Equal(t, []string{
		"壹A-03", "壹A-12", "壹B-05",
		"贰A-01",
		"CPA10", "CPB03",
		"创03", "创12",
	}, numbers(booths))
}

func TestSortBoothsHallBeforeLetter(t *testing.T) {
	// Hall is the coarser doujin key: 贰A compares after 壹Z.
	booths := []model.BoothRecord{
		booth(model.VenueDoujin, "贰A-01"),
		booth(model.VenueDoujin, "壹Z-99"),
	}

	SortBooths(booths)
	assert.Equal(t, []string{"壹Z-99", "贰A-01"}, numbers(booths))
}

func TestSortBoothsManualOrderWithinBucket(t *testing.T) {
	a := booth(model.VenueDoujin, "壹A-01")
	b := booth(model.VenueDoujin, "壹A-02")
	c := booth(model.VenueDoujin, "壹A-03")
	b.ManualOrder = intPtr(0)
	c.ManualOrder = intPtr(1)

	booths := []model.BoothRecord{a, b, c}
	SortBooths(booths)

	// Manually positioned booths come first within the hall, in position
	// order; the rest follow in number order.
	assert.Equal(t, []string{"壹A-02", "壹A-03", "壹A-01"}, numbers(booths))
}

func TestSortBoothsManualOrderDoesNotCrossHalls(t *testing.T) {
	a := booth(model.VenueDoujin, "贰A-01")
	a.ManualOrder = intPtr(0)
	b := booth(model.VenueDoujin, "壹A-01")

	booths := []model.BoothRecord{a, b}
	SortBooths(booths)

	assert.Equal(t, []string{"壹A-01", "贰A-01"}, numbers(booths))
}

func TestArrangePinnedKeepStoredOrder(t *testing.T) {
	// Pinned booths head the list in exactly the order they were stored,
	// even when the comparator would rank them the other way around.
	a := booth(model.VenueCreative, "创99")
	a.Pinned = true
	b := booth(model.VenueDoujin, "壹A-01")
	b.Pinned = true
	c := booth(model.VenueDoujin, "贰B-07")
	d := booth(model.VenueDoujin, "壹A-05")

	booths := Arrange([]model.BoothRecord{c, a, d, b})

	assert.Equal(t, []string{"创99", "壹A-01", "壹A-05", "贰B-07"}, numbers(booths))
}

func TestSplitPinned(t *testing.T) {
	a := booth(model.VenueCreative, "创99")
	a.Pinned = true
	b := booth(model.VenueDoujin, "壹A-01")
	b.Pinned = true
	c := booth(model.VenueDoujin, "贰B-07")

	pinned, rest := SplitPinned([]model.BoothRecord{a, c, b})

	assert.Equal(t, []string{"创99", "壹A-01"}, numbers(pinned))
	assert.Equal(t, []string{"贰B-07"}, numbers(rest))
}

func TestSortBoothsUnparsableSinksLast(t *testing.T) {
	booths := []model.BoothRecord{
		booth(model.VenueDoujin, "怪摊位"),
		booth(model.VenueDoujin, "壹A-01"),
	}

	SortBooths(booths)
	assert.Equal(t, []string{"壹A-01", "怪摊位"}, numbers(booths))
}

func TestSortBoothsStable(t *testing.T) {
	a := booth(model.VenueDoujin, "壹A-01")
	a.Name = "first"
	b := booth(model.VenueDoujin, "壹A-01")
	b.Name = "second"

	booths := []model.BoothRecord{a, b}
	SortBooths(booths)

	require.Len(t, booths, 2)
	assert.Equal(t, "first", booths[0].Name)
	assert.Equal(t, "second", booths[1].Name)
}
