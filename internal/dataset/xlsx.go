package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

func readXLSX(path string) (*Table, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}

	// Data is always read from the first sheet.
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty dataset, no header row", path)
	}

	table := &Table{Header: rows[0]}
	for _, row := range rows[1:] {
		table.Rows = append(table.Rows, pad(row, len(table.Header)))
	}
	return table, nil
}

func writeXLSX(path string, t *Table) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)

	writeRow := func(idx int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, idx)
		if err != nil {
			return err
		}
		return file.SetSheetRow(sheet, cell, &values)
	}

	if err := writeRow(1, t.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := writeRow(i+2, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
