package table

import (
	"sort"

	crerr "github.com/cockroachdb/errors"
)

type AggFunc uint8

const (
	// Sum skips nulls; a group with no numbers sums to 0.
	Sum AggFunc = iota
	// Mean skips nulls; a group with no numbers has a null mean.
	Mean
)

type Aggregation struct {
	Column string
	Func   AggFunc
	As     string
}

func (a Aggregation) outputName() string {
	if a.As != "" {
		return a.As
	}
	return a.Column
}

type group struct {
	key  []Value
	rows []int
}

// GroupBy aggregates rows sharing the same key values. Groups come out
// sorted by key; rows with a null in any key column are skipped. With no
// keys the whole table forms a single group and exactly one row is returned.
func (t *Table) GroupBy(keys []string, aggs []Aggregation) (*Table, error) {
	keyPos := make([]int, len(keys))
	for i, key := range keys {
		idx, err := t.columnIndex(key)
		if err != nil {
			return nil, crerr.Wrap(err, "group key")
		}
		keyPos[i] = idx
	}

	aggPos := make([]int, len(aggs))
	for i, agg := range aggs {
		idx, err := t.columnIndex(agg.Column)
		if err != nil {
			return nil, crerr.Wrap(err, "aggregation")
		}
		if !t.IsNumeric(agg.Column) {
			return nil, crerr.Wrapf(ErrNonNumeric, "column %q", agg.Column)
		}
		aggPos[i] = idx
	}

	groups := t.groups(keyPos)

	columns := make([]string, 0, len(keys)+len(aggs))
	columns = append(columns, keys...)
	for _, agg := range aggs {
		columns = append(columns, agg.outputName())
	}

	rows := make([][]Value, 0, len(groups))
	for _, g := range groups {
		row := make([]Value, 0, len(columns))
		row = append(row, g.key...)
		for i, agg := range aggs {
			row = append(row, aggregate(t.rows, g.rows, aggPos[i], agg.Func))
		}
		rows = append(rows, row)
	}

	return New(columns, rows)
}

// MeanOfNumeric groups by keys and averages every other numeric column.
// String columns are left out of the result.
func (t *Table) MeanOfNumeric(keys ...string) (*Table, error) {
	isKey := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		isKey[key] = struct{}{}
	}

	aggs := make([]Aggregation, 0, len(t.columns))
	for _, column := range t.columns {
		if _, ok := isKey[column]; ok {
			continue
		}
		if !t.IsNumeric(column) {
			continue
		}
		aggs = append(aggs, Aggregation{Column: column, Func: Mean})
	}

	return t.GroupBy(keys, aggs)
}

func (t *Table) groups(keyPos []int) []*group {
	if len(keyPos) == 0 {
		return []*group{{rows: sequence(len(t.rows))}}
	}

	byKey := make(map[string]*group)
	out := make([]*group, 0)
	for i, row := range t.rows {
		key := make([]Value, len(keyPos))
		skip := false
		for j, p := range keyPos {
			if row[p].IsNull() {
				skip = true
				break
			}
			key[j] = row[p]
		}
		if skip {
			continue
		}

		id := compositeKey(key)
		g, ok := byKey[id]
		if !ok {
			g = &group{key: key}
			byKey[id] = g
			out = append(out, g)
		}
		g.rows = append(g.rows, i)
	}

	sort.SliceStable(out, func(a, b int) bool {
		for i := range out[a].key {
			if c := Compare(out[a].key[i], out[b].key[i]); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return out
}

func aggregate(rows [][]Value, members []int, pos int, fn AggFunc) Value {
	var total float64
	count := 0
	for _, r := range members {
		f, ok := rows[r][pos].Float()
		if !ok {
			continue
		}
		total += f
		count++
	}

	switch fn {
	case Mean:
		if count == 0 {
			return Null()
		}
		return Number(total / float64(count))
	default:
		return Number(total)
	}
}
