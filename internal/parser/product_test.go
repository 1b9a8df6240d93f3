package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukirin/cplist/internal/model"
)

func TestParseProductsFromLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []model.ProductRecord
	}{
		{
			name: "symbol price with quantity",
			line: "公式集¥50 ×2",
			want: []model.ProductRecord{{Name: "公式集", Price: 50, Quantity: 2, Status: model.StatusPending}},
		},
		{
			name: "full-width currency",
			line: "海报￥12",
			want: []model.ProductRecord{{Name: "海报", Price: 12, Quantity: 1, Status: model.StatusPending}},
		},
		{
			name: "multiple products on one line",
			line: "色纸¥30 挂件¥25 x3",
			want: []model.ProductRecord{
				{Name: "色纸", Price: 30, Quantity: 1, Status: model.StatusPending},
				{Name: "挂件", Price: 25, Quantity: 3, Status: model.StatusPending},
			},
		},
		{
			name: "currency word fallback",
			line: "徽章 10元",
			want: []model.ProductRecord{{Name: "徽章", Price: 10, Quantity: 1, Status: model.StatusPending}},
		},
		{
			name: "currency word with quantity",
			line: "贴纸 5块 ×4",
			want: []model.ProductRecord{{Name: "贴纸", Price: 5, Quantity: 4, Status: model.StatusPending}},
		},
		{
			name: "symbol pattern suppresses word fallback",
			line: "画集¥80 杂项 10元",
			want: []model.ProductRecord{{Name: "画集", Price: 80, Quantity: 1, Status: model.StatusPending}},
		},
		{
			name: "zero price discarded",
			line: "免费品¥0",
			want: nil,
		},
		{
			name: "zero quantity means one copy",
			line: "公式集¥50 ×0",
			want: []model.ProductRecord{{Name: "公式集", Price: 50, Quantity: 1, Status: model.StatusPending}},
		},
		{
			name: "decimal price",
			line: "明信片¥7.5",
			want: []model.ProductRecord{{Name: "明信片", Price: 7.5, Quantity: 1, Status: model.StatusPending}},
		},
		{
			name: "no product",
			line: "只是一句备注",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &model.BoothEntry{}
			ParseProductsFromLine(tt.line, entry)
			assert.Equal(t, tt.want, entry.Products)
		})
	}
}

func TestParseProductsNameLengthCap(t *testing.T) {
	entry := &model.BoothEntry{}
	ParseProductsFromLine(strings.Repeat("名", 60)+"¥20", entry)
	assert.Empty(t, entry.Products, "over-long names are sentence fragments, not items")
}

func TestParseProductsNilEntry(t *testing.T) {
	assert.NotPanics(t, func() {
		ParseProductsFromLine("公式集¥50", nil)
	})
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name  string
		after string
		want  string
	}{
		{"plain", " 萌新社", "萌新社"},
		{"colon delimiter", "：某某社", "某某社"},
		{"stops before price token", " 萌新社 公式集¥50", "萌新社"},
		{"stops at wide gap", " 某社  后面的内容", "某社"},
		{"stops at comma", " 某社，其他", "某社"},
		{"trailing bracket stripped", " 某社）", "某社"},
		{"fallback token", "某社¥备注", "某社"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, extractName(tt.after, plainFirstCharExcluded))
		})
	}
}
