package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVenueTypeIsValid(t *testing.T) {
	assert.True(t, VenueDoujin.IsValid())
	assert.True(t, VenueEnterprise.IsValid())
	assert.True(t, VenueCreative.IsValid())
	assert.False(t, VenueType("").IsValid())
	assert.False(t, VenueType("hall").IsValid())
}

func TestBoothTotals(t *testing.T) {
	b := BoothRecord{
		Type:   VenueDoujin,
		Number: "壹A-01",
		Products: []ProductRecord{
			{Name: "色纸", Price: 30, Quantity: 2, Status: StatusBought},
			{Name: "挂件", Price: 45.5, Quantity: 1, Status: StatusPending},
			{Name: "画集", Price: 120, Quantity: 1, Status: StatusBought},
		},
	}

	assert.InDelta(t, 225.5, b.Total(), 0.001)
	assert.Equal(t, 2, b.BoughtCount())

	empty := BoothRecord{Type: VenueCreative, Number: "创01"}
	assert.Zero(t, empty.Total())
	assert.Zero(t, empty.BoughtCount())
}

func TestBoothValidate(t *testing.T) {
	tests := []struct {
		name    string
		booth   BoothRecord
		wantErr string
	}{
		{
			name:  "valid booth",
			booth: BoothRecord{Type: VenueDoujin, Number: "壹A-01", Name: "社团"},
		},
		{
			name:    "missing number",
			booth:   BoothRecord{Type: VenueDoujin, Name: "社团"},
			wantErr: "booth number is required",
		},
		{
			name:    "whitespace number",
			booth:   BoothRecord{Type: VenueDoujin, Number: "   "},
			wantErr: "booth number is required",
		},
		{
			name:    "unknown venue type",
			booth:   BoothRecord{Type: "stage", Number: "壹A-01"},
			wantErr: "invalid venue type",
		},
		{
			name: "bad product surfaces with index",
			booth: BoothRecord{
				Type:   VenueEnterprise,
				Number: "CPA01",
				Products: []ProductRecord{
					{Name: "周边", Price: 10, Quantity: 1},
					{Name: "吧唧", Price: -5, Quantity: 1},
				},
			},
			wantErr: "product 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.booth.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPruneProducts(t *testing.T) {
	b := BoothRecord{
		Type:   VenueDoujin,
		Number: "贰B-12",
		Products: []ProductRecord{
			{Name: "立牌", Price: 35, Quantity: 1},
			{Name: "  ", Price: 10, Quantity: 1},
			{Name: "", Price: 5, Quantity: 1},
			{Name: "钥匙扣", Price: 15, Quantity: 2},
		},
	}

	b.PruneProducts()

	require.Len(t, b.Products, 2)
	assert.Equal(t, "立牌", b.Products[0].Name)
	assert.Equal(t, "钥匙扣", b.Products[1].Name)
}
