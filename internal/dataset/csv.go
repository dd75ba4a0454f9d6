package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// readCSVColumn reads one column of a CSV file by header name. The
// first row is treated as headers. Rows shorter than the header row
// yield empty cells for the missing fields.
func readCSVColumn(path, column string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%s: file has no header row", path)
	}

	headers := records[0]
	index := -1
	for i, header := range headers {
		if header == column {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, fmt.Errorf("%s: no column %q, have %s", path, column, strings.Join(headers, ", "))
	}

	cells := make([]string, 0, len(records)-1)
	for _, row := range records[1:] {
		if index < len(row) {
			cells = append(cells, row[index])
		} else {
			cells = append(cells, "")
		}
	}

	return cells, nil
}
