package sheet

import (
	"regexp"
	"strings"

	"github.com/yukirin/cplist/internal/venue"
)

// ColumnMap assigns semantic fields to column indices.
type ColumnMap map[Field]int

// headerScanLimit bounds how many leading rows are examined for a header.
const headerScanLimit = 10

// inferSampleLimit bounds how many data rows feed statistical inference.
const inferSampleLimit = 50

// Thresholds for statistical column inference: a column is the booth-number
// column when more than 40% of its non-empty cells yield a valid number, and
// the price column when more than 60% are pure decimals.
const (
	boothRateThreshold = 0.4
	priceRateThreshold = 0.6
)

var decimalRe = regexp.MustCompile(`^\d+(\.\d+)?$`)

// isHeaderRow reports whether a row looks like a header: at least two cells
// matching two distinct semantic fields, crediting at most one field per
// cell and one cell per field.
func isHeaderRow(row []string) bool {
	matched := 0
	credited := make(map[Field]bool)
	for _, cell := range row {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		for _, field := range fieldOrder {
			if credited[field] {
				continue
			}
			if matchesKeyword(cell, field) {
				credited[field] = true
				matched++
				break
			}
		}
		if matched >= 2 {
			return true
		}
	}
	return false
}

// buildColumnMap maps fields to columns from a header row in two passes:
// exact keyword matches first, then substring matches for any field still
// unmapped, skipping columns already claimed.
func buildColumnMap(headerRow []string) ColumnMap {
	m := make(ColumnMap)
	used := make(map[int]bool)

	for col, cell := range headerRow {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		for _, field := range fieldOrder {
			if _, ok := m[field]; ok {
				continue
			}
			if matchesKeywordExact(cell, field) {
				m[field] = col
				used[col] = true
				break
			}
		}
	}

	for col, cell := range headerRow {
		if strings.TrimSpace(cell) == "" || used[col] {
			continue
		}
		for _, field := range fieldOrder {
			if _, ok := m[field]; ok {
				continue
			}
			if matchesKeyword(cell, field) {
				m[field] = col
				used[col] = true
				break
			}
		}
	}

	return m
}

type columnStats struct {
	boothHits int
	priceHits int
	textHits  int
	total     int
}

// inferColumnMap derives a column map from data alone when no header row
// exists. The booth-number and price columns are found by hit rate; the
// remaining non-empty text columns become product, name and note in column
// order.
func inferColumnMap(dataRows [][]string) ColumnMap {
	if len(dataRows) == 0 {
		return ColumnMap{}
	}

	colCount := 0
	for _, row := range dataRows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return ColumnMap{}
	}

	stats := make([]columnStats, colCount)
	sample := dataRows
	if len(sample) > inferSampleLimit {
		sample = sample[:inferSampleLimit]
	}
	for _, row := range sample {
		for ci, cell := range row {
			val := strings.TrimSpace(cell)
			if val == "" {
				continue
			}
			s := &stats[ci]
			s.total++
			s.textHits++
			if number, _ := venue.ExtractBoothNumber(val); number != "" {
				s.boothHits++
			}
			if decimalRe.MatchString(val) {
				s.priceHits++
			}
		}
	}

	m := make(ColumnMap)

	bestCol, bestRate := -1, 0.0
	for ci := range stats {
		if stats[ci].total == 0 {
			continue
		}
		rate := float64(stats[ci].boothHits) / float64(stats[ci].total)
		if rate > boothRateThreshold && rate > bestRate {
			bestRate, bestCol = rate, ci
		}
	}
	// A grid may carry no booth-number column at all; text columns are
	// still assigned so the decoder can judge usability on its own.
	if bestCol >= 0 {
		m[FieldNumber] = bestCol
	}

	bestCol, bestRate = -1, 0.0
	for ci := range stats {
		if numberCol, ok := m[FieldNumber]; ok && ci == numberCol {
			continue
		}
		if stats[ci].total == 0 {
			continue
		}
		rate := float64(stats[ci].priceHits) / float64(stats[ci].total)
		if rate > priceRateThreshold && rate > bestRate {
			bestRate, bestCol = rate, ci
		}
	}
	if bestCol >= 0 {
		m[FieldPrice] = bestCol
	}

	textFields := []Field{FieldProduct, FieldName, FieldNote}
	next := 0
	for ci := range stats {
		if next >= len(textFields) {
			break
		}
		if col, ok := m[FieldNumber]; ok && ci == col {
			continue
		}
		if col, ok := m[FieldPrice]; ok && ci == col {
			continue
		}
		if stats[ci].textHits == 0 {
			continue
		}
		m[textFields[next]] = ci
		next++
	}

	return m
}
