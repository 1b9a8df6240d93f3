package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductStatusNext(t *testing.T) {
	assert.Equal(t, StatusBought, StatusPending.Next())
	assert.Equal(t, StatusMissed, StatusBought.Next())
	assert.Equal(t, StatusPending, StatusMissed.Next())

	// Unknown values restart the cycle.
	assert.Equal(t, StatusPending, ProductStatus("sold_out").Next())
}

func TestProductValidate(t *testing.T) {
	tests := []struct {
		name    string
		product ProductRecord
		wantErr string
	}{
		{
			name:    "valid",
			product: ProductRecord{Name: "亚克力立牌", Price: 45, Quantity: 1},
		},
		{
			name:    "free item",
			product: ProductRecord{Name: "特典卡", Price: 0, Quantity: 1},
		},
		{
			name:    "empty name",
			product: ProductRecord{Price: 10, Quantity: 1},
			wantErr: "product name is required",
		},
		{
			name:    "negative price",
			product: ProductRecord{Name: "画集", Price: -1, Quantity: 1},
			wantErr: "price must be non-negative",
		},
		{
			name:    "zero quantity",
			product: ProductRecord{Name: "画集", Price: 10, Quantity: 0},
			wantErr: "quantity must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
