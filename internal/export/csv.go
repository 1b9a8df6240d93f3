// Package export writes shopping lists to external formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"
	"github.com/yukirin/cplist/internal/model"
)

// csvRow is one spreadsheet line. A booth's first product carries the booth
// columns; its remaining products leave them blank so the sheet reads as
// grouped blocks.
type csvRow struct {
	Number   string `csv:"摊位号"`
	Name     string `csv:"摊位名"`
	Zone     string `csv:"专区/IP"`
	Product  string `csv:"制品"`
	Price    string `csv:"价格"`
	Quantity string `csv:"数量"`
	Status   string `csv:"状态"`
	Note     string `csv:"备注"`
}

// statusGlyph renders a product status for export.
func statusGlyph(s model.ProductStatus) string {
	switch s {
	case model.StatusBought:
		return "✓"
	case model.StatusMissed:
		return "✗"
	default:
		return ""
	}
}

// WriteCSV writes booths as CSV in their given order. Callers sort first.
func WriteCSV(w io.Writer, booths []model.BoothRecord) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	for _, b := range booths {
		for _, row := range boothRows(&b) {
			if err := enc.Encode(row); err != nil {
				return fmt.Errorf("failed to encode booth %s: %w", b.Number, err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func boothRows(b *model.BoothRecord) []csvRow {
	if len(b.Products) == 0 {
		return []csvRow{{
			Number: b.Number,
			Name:   b.Name,
			Zone:   b.Zone,
			Note:   b.Note,
		}}
	}

	rows := make([]csvRow, 0, len(b.Products))
	for i, p := range b.Products {
		row := csvRow{
			Product:  p.Name,
			Price:    formatPrice(p.Price),
			Quantity: fmt.Sprintf("%d", p.Quantity),
			Status:   statusGlyph(p.Status),
			Note:     p.StatusNote,
		}
		if i == 0 {
			row.Number = b.Number
			row.Name = b.Name
			row.Zone = b.Zone
			if row.Note == "" {
				row.Note = b.Note
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// formatPrice trims trailing zeros so whole prices print without decimals.
func formatPrice(p float64) string {
	if p == float64(int64(p)) {
		return fmt.Sprintf("%d", int64(p))
	}
	return fmt.Sprintf("%.2f", p)
}
