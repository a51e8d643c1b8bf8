package table

import (
	crerr "github.com/cockroachdb/errors"
)

var ErrMissingKey = crerr.New("join key missing")

// OuterJoin performs a full outer join of left and right on keys.
//
// Matching rows are combined (duplicates on both sides produce every pairing);
// rows without a partner are kept with nulls in the other side's columns.
// Non-key columns present on both sides are coalesced: the left value wins
// and the right one fills a left null. The result holds left's columns
// followed by right-only columns, sorted by keys with a fresh index.
func OuterJoin(left, right *Table, keys []string) (*Table, error) {
	if len(keys) == 0 {
		return nil, crerr.Wrap(ErrMissingKey, "no join keys given")
	}
	for _, key := range keys {
		if !left.Has(key) {
			return nil, crerr.Wrapf(ErrMissingKey, "left table has no column %q", key)
		}
		if !right.Has(key) {
			return nil, crerr.Wrapf(ErrMissingKey, "right table has no column %q", key)
		}
	}

	columns := left.Columns()
	for _, column := range right.columns {
		if !left.Has(column) {
			columns = append(columns, column)
		}
	}

	// positions of every output column in left/right, -1 when absent
	leftPos := make([]int, len(columns))
	rightPos := make([]int, len(columns))
	for i, column := range columns {
		leftPos[i] = -1
		rightPos[i] = -1
		if idx, ok := left.lookup[column]; ok {
			leftPos[i] = idx
		}
		if idx, ok := right.lookup[column]; ok {
			rightPos[i] = idx
		}
	}

	rightByKey := make(map[string][]int, len(right.rows))
	for i, row := range right.rows {
		id := rowKey(right, row, keys)
		rightByKey[id] = append(rightByKey[id], i)
	}

	combine := func(l, r []Value) []Value {
		out := make([]Value, len(columns))
		for i := range columns {
			var v Value
			if l != nil && leftPos[i] >= 0 {
				v = l[leftPos[i]]
			}
			if v.IsNull() && r != nil && rightPos[i] >= 0 {
				v = r[rightPos[i]]
			}
			out[i] = v
		}
		return out
	}

	rows := make([][]Value, 0, len(left.rows)+len(right.rows))
	matched := make([]bool, len(right.rows))
	for _, l := range left.rows {
		partners := rightByKey[rowKey(left, l, keys)]
		if len(partners) == 0 {
			rows = append(rows, combine(l, nil))
			continue
		}
		for _, ri := range partners {
			matched[ri] = true
			rows = append(rows, combine(l, right.rows[ri]))
		}
	}
	for i, r := range right.rows {
		if !matched[i] {
			rows = append(rows, combine(nil, r))
		}
	}

	joined, err := New(columns, rows)
	if err != nil {
		return nil, err
	}
	sorted, err := joined.SortStable(keys...)
	if err != nil {
		return nil, err
	}
	return sorted.ResetIndex(), nil
}

func rowKey(t *Table, row []Value, keys []string) string {
	values := make([]Value, len(keys))
	for i, key := range keys {
		values[i] = row[t.lookup[key]]
	}
	return compositeKey(values)
}

// WithColumn appends (or replaces) a column computed from each row.
func (t *Table) WithColumn(name string, compute func(Row) Value) *Table {
	columns := t.Columns()
	pos, exists := t.lookup[name]
	if !exists {
		columns = append(columns, name)
		pos = len(columns) - 1
	}

	rows := make([][]Value, len(t.rows))
	for i := range t.rows {
		row := make([]Value, len(columns))
		copy(row, t.rows[i])
		row[pos] = compute(t.Row(i))
		rows[i] = row
	}

	out := mustNew(columns, rows)
	out.index = t.Index()
	return out
}
