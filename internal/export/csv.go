package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSV response metadata.
const (
	CSVContentType = "text/csv"
	CSVFilename    = "transactions.csv"
)

// WriteCSV writes the header followed by one record per row.
func WriteCSV(w io.Writer, header Header, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header[:]); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Fields()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a document produced by WriteCSV, returning the header and rows.
func ReadCSV(r io.Reader) (Header, []Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header{})

	records, err := cr.ReadAll()
	if err != nil {
		return Header{}, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return Header{}, nil, fmt.Errorf("read csv: missing header")
	}

	var header Header
	copy(header[:], records[0])

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, Row{Date: rec[0], Category: rec[1], Amount: rec[2], Type: rec[3]})
	}
	return header, rows, nil
}
