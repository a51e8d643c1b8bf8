// Package table is a small column-oriented frame used by the preprocessing
// pipeline: ordered columns, nullable cells and a row label index. Every
// operation returns a new Table; the receiver is never modified.
package table

import (
	"sort"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrColumnNotFound  = crerr.New("column not found")
	ErrDuplicateColumn = crerr.New("duplicate column")
	ErrRowWidth        = crerr.New("row width does not match columns")
	ErrNonNumeric      = crerr.New("column is not numeric")
)

type Table struct {
	columns []string
	lookup  map[string]int
	rows    [][]Value
	index   []int
}

// New builds a table with a fresh 0..n-1 index. Rows are used as given.
func New(columns []string, rows [][]Value) (*Table, error) {
	lookup := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, exists := lookup[name]; exists {
			return nil, crerr.Wrapf(ErrDuplicateColumn, "column %q", name)
		}
		lookup[name] = i
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, crerr.Wrapf(ErrRowWidth, "row %d has %d cells, want %d", i, len(row), len(columns))
		}
	}

	cols := make([]string, len(columns))
	copy(cols, columns)

	return &Table{
		columns: cols,
		lookup:  lookup,
		rows:    rows,
		index:   sequence(len(rows)),
	}, nil
}

func mustNew(columns []string, rows [][]Value) *Table {
	t, err := New(columns, rows)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) Has(column string) bool {
	_, ok := t.lookup[column]
	return ok
}

func (t *Table) columnIndex(column string) (int, error) {
	idx, ok := t.lookup[column]
	if !ok {
		return 0, crerr.Wrapf(ErrColumnNotFound, "column %q", column)
	}
	return idx, nil
}

// Index returns the row labels.
func (t *Table) Index() []int {
	out := make([]int, len(t.index))
	copy(out, t.index)
	return out
}

func (t *Table) Row(i int) Row {
	return Row{table: t, pos: i}
}

// Value returns the cell at row i, or null if the column does not exist.
func (t *Table) Value(i int, column string) Value {
	idx, ok := t.lookup[column]
	if !ok || i < 0 || i >= len(t.rows) {
		return Null()
	}
	return t.rows[i][idx]
}

// IsNumeric reports whether every non-null cell of column is a number.
// An all-null column is numeric.
func (t *Table) IsNumeric(column string) bool {
	idx, ok := t.lookup[column]
	if !ok {
		return false
	}
	for _, row := range t.rows {
		if k := row[idx].Kind(); k == KindString {
			return false
		}
	}
	return true
}

// SortStable orders rows by the given columns, preserving the relative order
// of equal rows. Row labels travel with their rows.
func (t *Table) SortStable(columns ...string) (*Table, error) {
	positions := make([]int, len(columns))
	for i, column := range columns {
		idx, err := t.columnIndex(column)
		if err != nil {
			return nil, err
		}
		positions[i] = idx
	}

	order := sequence(len(t.rows))
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := t.rows[order[a]], t.rows[order[b]]
		for _, p := range positions {
			if c := Compare(ra[p], rb[p]); c != 0 {
				return c < 0
			}
		}
		return false
	})

	return t.take(order), nil
}

// ResetIndex relabels rows 0..n-1 in their current order.
func (t *Table) ResetIndex() *Table {
	out := t.take(sequence(len(t.rows)))
	out.index = sequence(len(t.rows))
	return out
}

// Filter keeps the rows for which keep returns true.
func (t *Table) Filter(keep func(Row) bool) *Table {
	order := make([]int, 0, len(t.rows))
	for i := range t.rows {
		if keep(t.Row(i)) {
			order = append(order, i)
		}
	}
	return t.take(order)
}

// Drop removes the named columns. Names that are not present are ignored.
func (t *Table) Drop(columns ...string) *Table {
	dropped := make(map[string]struct{}, len(columns))
	for _, column := range columns {
		dropped[column] = struct{}{}
	}

	keep := make([]string, 0, len(t.columns))
	for _, column := range t.columns {
		if _, ok := dropped[column]; !ok {
			keep = append(keep, column)
		}
	}

	out, _ := t.Select(keep...)
	return out
}

// Select projects the table onto columns, in the given order.
func (t *Table) Select(columns ...string) (*Table, error) {
	positions := make([]int, len(columns))
	for i, column := range columns {
		idx, err := t.columnIndex(column)
		if err != nil {
			return nil, err
		}
		positions[i] = idx
	}

	rows := make([][]Value, len(t.rows))
	for i, row := range t.rows {
		projected := make([]Value, len(positions))
		for j, p := range positions {
			projected[j] = row[p]
		}
		rows[i] = projected
	}

	out, err := New(columns, rows)
	if err != nil {
		return nil, err
	}
	out.index = t.Index()
	return out, nil
}

func (t *Table) take(order []int) *Table {
	rows := make([][]Value, len(order))
	index := make([]int, len(order))
	for i, src := range order {
		row := make([]Value, len(t.columns))
		copy(row, t.rows[src])
		rows[i] = row
		index[i] = t.index[src]
	}
	out := mustNew(t.columns, rows)
	out.index = index
	return out
}

func sequence(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Row is a read-only view of one table row.
type Row struct {
	table *Table
	pos   int
}

func (r Row) Get(column string) Value {
	return r.table.Value(r.pos, column)
}

func (r Row) Label() int {
	return r.table.index[r.pos]
}

// Values returns a copy of the cells in column order.
func (r Row) Values() []Value {
	out := make([]Value, len(r.table.columns))
	copy(out, r.table.rows[r.pos])
	return out
}
