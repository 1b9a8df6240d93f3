package sheet

import (
	"errors"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/yukirin/cplist/internal/model"
	"github.com/yukirin/cplist/internal/venue"
)

// ErrNoUsableData reports that neither a booth-number nor a product column
// could be located, by header or by inference. It is distinct from an empty
// input, which yields an empty result and no error.
var ErrNoUsableData = errors.New("no usable data in sheet")

// junkFirstCellRe matches aggregate and banner rows: event banners, totals,
// subtotals, statistics footers.
var junkFirstCellRe = regexp.MustCompile(`(?i)^(COMICUP|CP\d|共\d|合计|总计|统计)`)

var (
	leadingNumberRe = regexp.MustCompile(`\d+(\.\d+)?`)
	leadingIntRe    = regexp.MustCompile(`\d+`)
	currencyJunkRe  = regexp.MustCompile(`[¥￥,，]`)
)

// Parse turns a raw cell grid into merged booth entries. It locates the
// header row (or falls back to statistical column inference), then decodes
// data rows: junk rows are dropped, repeated booth numbers merge into one
// entry, zone values carry forward across rows that lack their own, and
// product cells attach to the current booth.
func Parse(rows [][]string) ([]model.BoothEntry, error) {
	return ParseWithProgress(rows, nil)
}

// ParseWithProgress is Parse with a per-row progress callback, invoked as
// (decoded, total) for each data row.
func ParseWithProgress(rows [][]string, progress func(done, total int)) ([]model.BoothEntry, error) {
	if len(rows) < 2 {
		return nil, nil
	}

	colMap, dataRows := locateColumns(rows)

	_, hasNumber := colMap[FieldNumber]
	_, hasProduct := colMap[FieldProduct]
	if !hasNumber && !hasProduct {
		return nil, ErrNoUsableData
	}

	var (
		entries  []*model.BoothEntry
		byNumber = make(map[string]*model.BoothEntry)
		current  *model.BoothEntry
		lastZone string
	)

	for i, row := range dataRows {
		if progress != nil {
			progress(i+1, len(dataRows))
		}
		if isJunkRow(row, colMap) {
			continue
		}

		numberRaw := cellValue(row, colMap, FieldNumber)
		nameRaw := cellValue(row, colMap, FieldName)
		zoneRaw := cellValue(row, colMap, FieldZone)
		noteRaw := cellValue(row, colMap, FieldNote)
		productRaw := cellValue(row, colMap, FieldProduct)
		priceRaw := cellValue(row, colMap, FieldPrice)
		qtyRaw := cellValue(row, colMap, FieldQty)

		// Zone values persist across rows: spreadsheets often list the
		// zone once per venue block.
		if zoneRaw != "" {
			lastZone = zoneRaw
		}

		number, _ := venue.ExtractBoothNumber(numberRaw)

		switch {
		case number != "" && byNumber[number] != nil:
			current = byNumber[number]
			if nameRaw != "" && (current.Name == "" || current.Name == model.UnnamedBooth) {
				current.Name = nameRaw
			}
		case number != "":
			name := nameRaw
			if name == "" {
				name = model.UnnamedBooth
			}
			zone := zoneRaw
			if zone == "" {
				zone = lastZone
			}
			current = &model.BoothEntry{
				Type:   venue.InferBoothType(number),
				Number: number,
				Name:   name,
				Zone:   zone,
				Note:   noteRaw,
			}
			byNumber[number] = current
			entries = append(entries, current)
		}

		if productRaw != "" && current != nil {
			current.Products = append(current.Products, model.ProductRecord{
				Name:     productRaw,
				Price:    parsePrice(priceRaw),
				Quantity: parseQuantity(qtyRaw),
				Status:   model.StatusPending,
			})
		}
	}

	result := make([]model.BoothEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, *e)
	}

	slog.Debug("decoded sheet rows",
		"rows", len(dataRows),
		"booths", len(result))

	return result, nil
}

// locateColumns finds the header row within the scan window and builds the
// column map from it; with no header it skips leading banner rows and falls
// back to statistical inference.
func locateColumns(rows [][]string) (ColumnMap, [][]string) {
	limit := headerScanLimit
	if len(rows) < limit {
		limit = len(rows)
	}

	for i := 0; i < limit; i++ {
		if isHeaderRow(rows[i]) {
			return buildColumnMap(rows[i]), rows[i+1:]
		}
	}

	start := 0
	for i := 0; i < limit; i++ {
		found := false
		for _, cell := range rows[i] {
			if number, _ := venue.ExtractBoothNumber(cell); number != "" {
				start = i
				found = true
				break
			}
		}
		if found {
			break
		}
	}

	dataRows := rows[start:]
	return inferColumnMap(dataRows), dataRows
}

func isJunkRow(row []string, colMap ColumnMap) bool {
	if len(row) == 0 {
		return true
	}
	if junkFirstCellRe.MatchString(strings.TrimSpace(row[0])) {
		return true
	}
	return cellValue(row, colMap, FieldNumber) == "" && cellValue(row, colMap, FieldProduct) == ""
}

func cellValue(row []string, colMap ColumnMap, field Field) string {
	col, ok := colMap[field]
	if !ok || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// parsePrice reads the first numeric token of a price cell after stripping
// currency symbols and separators; malformed cells default to 0.
func parsePrice(raw string) float64 {
	cleaned := currencyJunkRe.ReplaceAllString(raw, "")
	m := leadingNumberRe.FindString(cleaned)
	if m == "" {
		return 0
	}
	price, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return price
}

// parseQuantity reads the leading integer of a quantity cell; malformed
// cells default to 1.
func parseQuantity(raw string) int {
	m := leadingIntRe.FindString(raw)
	if m == "" {
		return 1
	}
	qty, err := strconv.Atoi(m)
	if err != nil || qty < 1 {
		return 1
	}
	return qty
}
