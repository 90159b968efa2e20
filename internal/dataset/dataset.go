// Package dataset reads and writes tabular accession data. The format is
// chosen by file extension: .csv via encoding/csv, .xlsx via excelize.
package dataset

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Table is an in-memory tabular dataset. Row identity is positional; every
// row is padded to the header width.
type Table struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the index of the named column, or -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col), tolerating ragged rows.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// Read loads a table from path, dispatching on the file extension.
func Read(path string) (*Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return readCSV(path)
	case ".xlsx":
		return readXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q (want .csv or .xlsx)", ext)
	}
}

// Write saves a table to path, dispatching on the file extension.
func Write(path string, t *Table) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return writeCSV(path, t)
	case ".xlsx":
		return writeXLSX(path, t)
	default:
		return fmt.Errorf("unsupported dataset format %q (want .csv or .xlsx)", ext)
	}
}

// pad extends row to width columns so positional access stays safe.
func pad(row []string, width int) []string {
	for len(row) < width {
		row = append(row, "")
	}
	return row
}
