// Package dataset loads an uploaded tabular file into an in-memory table.
//
// A Dataset is immutable after load: downstream stages (classification,
// visualization) only read from it. Cells are kept as raw strings; type
// interpretation is the classifier's job.
package dataset

import "fmt"

// Dataset is an in-memory table of rows by named columns.
type Dataset struct {
	// Name is the original file name of the upload.
	Name string
	// Columns holds the header row, in file order.
	Columns []string
	// Rows holds the data rows. Every row has len(Columns) cells; short
	// rows are padded with empty strings at load time.
	Rows [][]string
}

// NumRows returns the number of data rows (header excluded).
func (d *Dataset) NumRows() int { return len(d.Rows) }

// NumColumns returns the number of columns.
func (d *Dataset) NumColumns() int { return len(d.Columns) }

// Head returns up to n leading rows for raw-data previews.
func (d *Dataset) Head(n int) [][]string {
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	return d.Rows[:n]
}

// Column returns the cell values of the named column, or an error if the
// column does not exist.
func (d *Dataset) Column(name string) ([]string, error) {
	for i, c := range d.Columns {
		if c == name {
			out := make([]string, len(d.Rows))
			for j, row := range d.Rows {
				out[j] = row[i]
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("column %q not found", name)
}

// padRows normalizes every row to ncol cells.
func padRows(rows [][]string, ncol int) [][]string {
	for i, r := range rows {
		if len(r) < ncol {
			tmp := make([]string, ncol)
			copy(tmp, r)
			rows[i] = tmp
		} else if len(r) > ncol {
			rows[i] = r[:ncol]
		}
	}
	return rows
}
