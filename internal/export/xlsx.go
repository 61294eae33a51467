package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSX response metadata.
const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	XLSXFilename    = "transactions.xlsx"
	XLSXSheet       = "Transactions"
)

// WriteXLSX writes the header and rows to a single-sheet workbook.
func WriteXLSX(w io.Writer, header Header, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", XLSXSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := setRow(f, 1, header[:]); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, i+2, r.Fields()); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(XLSXSheet, "A", "A", 12); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(XLSXSheet, "B", "B", 24); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(XLSXSheet, cell, &cells); err != nil {
		return fmt.Errorf("write xlsx row %d: %w", row, err)
	}
	return nil
}

// ReadXLSX reads back the rows written by WriteXLSX.
func ReadXLSX(r io.Reader) (Header, []Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Header{}, nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	records, err := f.GetRows(XLSXSheet)
	if err != nil {
		return Header{}, nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	if len(records) == 0 {
		return Header{}, nil, fmt.Errorf("read xlsx: missing header")
	}

	var header Header
	copy(header[:], records[0])

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		var cells [4]string
		copy(cells[:], rec)
		rows = append(rows, Row{Date: cells[0], Category: cells[1], Amount: cells[2], Type: cells[3]})
	}
	return header, rows, nil
}
