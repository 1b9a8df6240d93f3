package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadGrid reads CSV content into a raw cell grid. Rows may have differing
// field counts; the grid is returned ragged, exactly as exported.
func ReadGrid(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
