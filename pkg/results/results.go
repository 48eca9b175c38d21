// Package results accumulates per-dataset fitting results into ordered
// tables keyed by dataset identifier, and renders them for reporting.
//
// A Table's column set is fixed at construction (it is derived from the
// model spec); every recorded row must supply exactly those columns.
// Recording under an existing identifier overwrites that row, keeping its
// original position. Tables only grow; rows are never removed.
//
// Tables are not safe for concurrent mutation. A batch that fits datasets in
// parallel must serialize Record calls (single writer or a per-insert lock);
// everything upstream of the table is stateless per dataset.
package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// ErrColumnMismatch indicates a recorded row whose key set differs from the
// table's fixed columns. This is a programming error in the caller, not a
// property of the data.
var ErrColumnMismatch = errors.New("results: row columns do not match the table")

// Table is an ordered collection of per-dataset result rows with a fixed
// column set.
type Table struct {
	columns []string
	order   []string
	rows    map[string][]float64
}

// NewTable creates an empty table with the given fixed columns.
func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{columns: cols, rows: make(map[string][]float64)}
}

// Columns returns the fixed column names.
func (t *Table) Columns() []string { return t.columns }

// Len returns the number of recorded datasets.
func (t *Table) Len() int { return len(t.order) }

// IDs returns the dataset identifiers in insertion order.
func (t *Table) IDs() []string { return t.order }

// Row returns the values of one dataset in column order.
func (t *Table) Row(id string) ([]float64, bool) {
	row, ok := t.rows[id]
	return row, ok
}

// Record inserts or overwrites the row keyed by the dataset identifier.
// The row must contain exactly the table's columns.
func (t *Table) Record(id string, row map[string]float64) error {
	if len(row) != len(t.columns) {
		return fmt.Errorf("%w: got %d values, want %d", ErrColumnMismatch, len(row), len(t.columns))
	}
	values := make([]float64, len(t.columns))
	for i, col := range t.columns {
		v, ok := row[col]
		if !ok {
			return fmt.Errorf("%w: missing column %q", ErrColumnMismatch, col)
		}
		values[i] = v
	}
	if _, exists := t.rows[id]; !exists {
		t.order = append(t.order, id)
	}
	t.rows[id] = values
	return nil
}

// Render writes the table as a column-aligned text block with the given
// number of decimals. NaN values print as NaN; they flag degenerate
// statistics and must stay visible.
func (t *Table) Render(w io.Writer, decimals int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "dataset\t%s\t\n", strings.Join(t.columns, "\t"))
	for _, id := range t.order {
		fmt.Fprintf(tw, "%s\t", id)
		for _, v := range t.rows[id] {
			fmt.Fprintf(tw, "%.*f\t", decimals, v)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// WriteCSV writes the table as CSV with a header row; the first column is
// the dataset identifier.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"dataset"}, t.columns...)); err != nil {
		return err
	}
	for _, id := range t.order {
		rec := make([]string, 0, len(t.columns)+1)
		rec = append(rec, id)
		for _, v := range t.rows[id] {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
