package dataset

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteCSV writes the table as comma separated values with a header
// row.
func (t *Table) WriteCSV(w io.Writer) error {
	return t.df.WriteCSV(w)
}

// WriteExcel writes the table as a single-sheet xlsx workbook.
func (t *Table) WriteExcel(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	cell, err := excelize.CoordinatesToCellName(1, 1)
	if err != nil {
		return err
	}
	header := make([]any, 0, len(t.df.Names()))
	for _, name := range t.df.Names() {
		header = append(header, name)
	}
	if err := f.SetSheetRow(sheet, cell, &header); err != nil {
		return err
	}
	records := t.df.Records()
	for i, row := range records[1:] {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		line := make([]any, len(row))
		for j, v := range row {
			line[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &line); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	_, err = f.WriteTo(w)
	return err
}
