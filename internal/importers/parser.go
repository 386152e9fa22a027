package importers

import (
	"errors"
	"strings"
)

var (
	ErrNoRows      = errors.New("no rows found in file")
	ErrNoDataRows  = errors.New("file has a header row but no data rows")
	ErrNoValidRows = errors.New("no valid rows left after cleaning")
)

// DefaultLargeImportThreshold is the row count above which an import needs
// explicit operator confirmation.
const DefaultLargeImportThreshold = 5000

// minFilledCells is the least number of non-empty cells a data row needs to be kept.
const minFilledCells = 2

// Row maps a raw header to the raw cell value found under it.
type Row map[string]string

// Table is the result of parsing one delimited file.
type Table struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"-"`
	// Dropped counts data rows discarded for having too few filled cells.
	Dropped int `json:"dropped_rows"`
}

// Len returns the number of kept data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// IsLarge reports whether the table exceeds threshold rows.
// A non-positive threshold uses DefaultLargeImportThreshold.
func (t *Table) IsLarge(threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultLargeImportThreshold
	}
	return len(t.Rows) > threshold
}

// HasHeader reports whether header is one of the table's columns.
func (t *Table) HasHeader(header string) bool {
	for _, h := range t.Headers {
		if h == header {
			return true
		}
	}
	return false
}

// Parse splits raw comma-delimited text into a header row and data rows.
//
// Rows whose cells are all blank are skipped before the header is chosen.
// Data rows with fewer than two non-empty cells are dropped and counted in
// Table.Dropped. Cells are assigned to headers by position; missing trailing
// cells become empty strings and cells past the last header are ignored.
func Parse(raw string) (*Table, error) {
	var records [][]string
	for _, rec := range scanRecords(raw) {
		if filledCells(rec) > 0 {
			records = append(records, rec)
		}
	}

	if len(records) == 0 {
		return nil, ErrNoRows
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = cleanHeader(h)
	}

	if len(records) == 1 {
		return nil, ErrNoDataRows
	}

	table := &Table{Headers: headers}
	for _, rec := range records[1:] {
		if filledCells(rec) < minFilledCells {
			table.Dropped++
			continue
		}

		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		return nil, ErrNoValidRows
	}

	return table, nil
}

type scanState int

const (
	stateUnquoted scanState = iota
	stateQuoted
)

// scanRecords tokenizes raw into records of fields. Outside quotes a comma
// ends a field and CR, LF or CRLF ends a record. Inside quotes everything is
// literal except a doubled quote, which yields one quote character.
func scanRecords(raw string) [][]string {
	var (
		records [][]string
		record  []string
		field   strings.Builder
		state   = stateUnquoted
	)

	endField := func() {
		record = append(record, field.String())
		field.Reset()
	}
	endRecord := func() {
		endField()
		records = append(records, record)
		record = nil
	}

	for i := 0; i < len(raw); i++ {
		ch := raw[i]

		switch state {
		case stateQuoted:
			if ch != '"' {
				field.WriteByte(ch)
				continue
			}
			if i+1 < len(raw) && raw[i+1] == '"' {
				field.WriteByte('"')
				i++
				continue
			}
			state = stateUnquoted

		case stateUnquoted:
			switch ch {
			case '"':
				state = stateQuoted
			case ',':
				endField()
			case '\r':
				if i+1 < len(raw) && raw[i+1] == '\n' {
					i++
				}
				endRecord()
			case '\n':
				endRecord()
			default:
				field.WriteByte(ch)
			}
		}
	}

	if field.Len() > 0 || len(record) > 0 {
		endRecord()
	}

	return records
}

func filledCells(record []string) int {
	n := 0
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			n++
		}
	}
	return n
}

// cleanHeader trims h and strips one pair of wrapping quote characters.
func cleanHeader(h string) string {
	h = strings.TrimSpace(h)
	if len(h) >= 2 {
		first, last := h[0], h[len(h)-1]
		if (first == '"' || first == '\'') && first == last {
			h = strings.TrimSpace(h[1 : len(h)-1])
		}
	}
	return h
}
