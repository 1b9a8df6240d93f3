package sheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukirin/cplist/internal/model"
)

func TestParseWithHeaderRow(t *testing.T) {
	rows := [][]string{
		{"摊位号", "社团名", "价格"},
		{"壹A-01", "萌新社", ""},
		{"CPB02", "某企业", ""},
	}

	entries, err := Parse(rows)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "壹A-01", entries[0].Number)
	assert.Equal(t, "萌新社", entries[0].Name)
	assert.Equal(t, model.VenueDoujin, entries[0].Type)
	assert.Equal(t, "CPB02", entries[1].Number)
	assert.Equal(t, model.VenueEnterprise, entries[1].Type)
}

func TestParseHeaderBelowDecoyRow(t *testing.T) {
	// The first row is a banner with no header keywords; the real header
	// sits below it and must be located there, not assumed at row 0.
	rows := [][]string{
		{"欢迎参加", "", ""},
		{"摊位号", "社团名", "价格"},
		{"贰C-03", "示例社", "50"},
	}

	entries, err := Parse(rows)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "贰C-03", entries[0].Number)
	assert.Equal(t, "示例社", entries[0].Name)
}

func TestParseNoHeaderStatisticalInference(t *testing.T) {
	// No header: column 0 is mostly valid booth numbers, column 2 mostly
	// pure decimals. Inference must assign number→0, price→2, and the
	// remaining text column becomes the product.
	rows := [][]string{
		{"壹A-01", "挂件", "25"},
		{"壹A-02", "色纸", "30"},
		{"壹A-03", "画集", "80"},
		{"", "补充说明", ""},
		{"CPB01", "周边", "15.5"},
	}

	entries, err := Parse(rows)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	first := entries[0]
	assert.Equal(t, "壹A-01", first.Number)
	require.Len(t, first.Products, 1)
	assert.Equal(t, "挂件", first.Products[0].Name)
	assert.Equal(t, 25.0, first.Products[0].Price)

	last := entries[3]
	assert.Equal(t, "CPB01", last.Number)
	require.Len(t, last.Products, 1)
	assert.Equal(t, 15.5, last.Products[0].Price)
}

func TestParseMergesRepeatedNumbers(t *testing.T) {
	rows := [][]string{
		{"摊位号", "社团名", "制品", "价格", "数量"},
		{"壹A-01", "", "公式集", "¥50", "2"},
		{"壹A-01", "萌新社", "徽章", "10", ""},
	}

	entries, err := Parse(rows)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	// The first row had no name; the later row back-fills it.
	assert.Equal(t, "萌新社", e.Name)
	require.Len(t, e.Products, 2)
	assert.Equal(t, 50.0, e.Products[0].Price)
	assert.Equal(t, 2, e.Products[0].Quantity)
	assert.Equal(t, 10.0, e.Products[1].Price)
	assert.Equal(t, 1, e.Products[1].Quantity)
}

func TestParseUnnamedPlaceholder(t *testing.T) {
	rows := [][]string{
		{"摊位号", "社团名"},
		{"创07", ""},
	}

	entries, err := Parse(rows)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.UnnamedBooth, entries[0].Name)
}

func TestParseZoneCarryOver(t *testing.T) {
	rows := [][]string{
		{"摊位号", "专区", "社团名"},
		{"壹A-01", "某作品", "社一"},
		{"壹A-02", "", "社二"},
		{"壹A-03", "另一作品", "社三"},
	}

	entries, err := Parse(rows)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "某作品", entries[0].Zone)
	assert.Equal(t, "某作品", entries[1].Zone, "zone persists across rows lacking their own")
	assert.Equal(t, "另一作品", entries[2].Zone)
}

func TestParseProductRowsWithoutNumberAttachToCurrent(t *testing.T) {
	rows := [][]string{
		{"摊位号", "制品", "价格"},
		{"壹A-01", "公式集", "50"},
		{"", "徽章", "10"},
		{"", "色纸", "30"},
	}

	entries, err := Parse(rows)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Products, 3)
}

func TestParseJunkRows(t *testing.T) {
	rows := [][]string{
		{"摊位号", "制品", "价格"},
		{"COMICUP 29", "", ""},
		{"合计", "", "999"},
		{"壹A-01", "公式集", "50"},
		{"总计", "", "50"},
	}

	entries, err := Parse(rows)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "壹A-01", entries[0].Number)
}

func TestParseNoUsableData(t *testing.T) {
	// The header maps only price and quantity; with neither a number nor
	// a product column the grid carries nothing worth decoding.
	rows := [][]string{
		{"价格", "数量"},
		{"50", "2"},
	}

	_, err := Parse(rows)
	assert.ErrorIs(t, err, ErrNoUsableData)
}

func TestParseProductColumnWithoutNumbers(t *testing.T) {
	// No booth-number column anywhere, but inference still assigns the
	// text column as product, so the grid decodes without error. With no
	// booth to attach to, the products are dropped.
	rows := [][]string{
		{"挂件", "25"},
		{"色纸", "30"},
	}

	entries, err := Parse(rows)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseEmptyInputIsNotAnError(t *testing.T) {
	entries, err := Parse(nil)
	assert.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = Parse([][]string{{"只有一行"}})
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReadGrid(t *testing.T) {
	csvData := "摊位号,社团名,价格\n壹A-01,萌新社,50\n贰B-02,另一摊\n"
	rows, err := ReadGrid(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"壹A-01", "萌新社", "50"}, rows[1])
	assert.Len(t, rows[2], 2, "ragged rows are preserved")
}

func TestParsePriceAndQuantityDefaults(t *testing.T) {
	assert.Equal(t, 0.0, parsePrice("免费"))
	assert.Equal(t, 50.0, parsePrice("¥50"))
	assert.Equal(t, 12.5, parsePrice("￥12.5元"))
	assert.Equal(t, 1, parseQuantity(""))
	assert.Equal(t, 1, parseQuantity("很多"))
	assert.Equal(t, 3, parseQuantity("3个"))
}
