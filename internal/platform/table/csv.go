package table

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

var ErrEmptyInput = crerr.New("csv input has no header row")

var missingTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"NaN":  {},
	"nan":  {},
	"null": {},
	"NULL": {},
	"None": {},
}

// ReadCSV parses a headed CSV document. A column whose every non-missing
// cell parses as a float becomes numeric; any other column keeps strings.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if crerr.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, crerr.Wrap(err, "read csv header")
	}
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, crerr.Wrap(err, "read csv records")
	}

	numeric := make([]bool, len(columns))
	for c := range columns {
		numeric[c] = true
		for _, record := range records {
			cell := strings.TrimSpace(record[c])
			if isMissing(cell) {
				continue
			}
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				numeric[c] = false
				break
			}
		}
	}

	rows := make([][]Value, len(records))
	for i, record := range records {
		row := make([]Value, len(columns))
		for c := range columns {
			cell := strings.TrimSpace(record[c])
			switch {
			case isMissing(cell):
				row[c] = Null()
			case numeric[c]:
				f, _ := strconv.ParseFloat(cell, 64)
				row[c] = Number(f)
			default:
				row[c] = String(record[c])
			}
		}
		rows[i] = row
	}

	return New(columns, rows)
}

func isMissing(cell string) bool {
	_, ok := missingTokens[cell]
	return ok
}
