package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukirin/cplist/internal/model"
)

func TestWriteCSVLayout(t *testing.T) {
	booths := []model.BoothRecord{
		{
			Type:   model.VenueDoujin,
			Number: "壹A-01",
			Name:   "萌新社",
			Zone:   "某作品",
			Note:   "先去这家",
			Products: []model.ProductRecord{
				{Name: "公式集", Price: 50, Quantity: 2, Status: model.StatusBought},
				{Name: "徽章", Price: 10.5, Quantity: 1, Status: model.StatusMissed, StatusNote: "卖完了"},
				{Name: "色纸", Price: 30, Quantity: 1, Status: model.StatusPending},
			},
		},
		{
			Type:   model.VenueCreative,
			Number: "创07",
			Name:   "手作摊",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, booths))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, []string{"摊位号", "摊位名", "专区/IP", "制品", "价格", "数量", "状态", "备注"}, records[0])
	assert.Equal(t, []string{"壹A-01", "萌新社", "某作品", "公式集", "50", "2", "✓", "先去这家"}, records[1])
	assert.Equal(t, []string{"", "", "", "徽章", "10.50", "1", "✗", "卖完了"}, records[2])
	assert.Equal(t, []string{"", "", "", "色纸", "30", "1", "", ""}, records[3])
	assert.Equal(t, []string{"创07", "手作摊", "", "", "", "", "", ""}, records[4])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Empty(t, buf.String())
}
