package engine

import (
	"slices"

	"tabDB/internal/sql"
)

// applyFilter reports whether row satisfies the WHERE clause f. An empty
// filter matches everything; a comparison against NULL never matches.
func applyFilter(row sql.Row, f sql.Filter) bool {
	if len(f.Conditions) == 0 {
		return true
	}
	result := matches(row, f.Conditions[0])
	for _, c := range f.Conditions[1:] {
		if f.Or {
			result = result || matches(row, c)
		} else {
			result = result && matches(row, c)
		}
	}
	return result
}

func matches(row sql.Row, c sql.Condition) bool {
	v := row[c.Column]
	switch c.Op {
	case sql.OpIsNull:
		return v.Null
	case sql.OpIsNotNull:
		return !v.Null
	}
	if v.Null || c.Operand.Null {
		return false
	}

	cmp := v.Compare(c.Operand)
	switch c.Op {
	case sql.OpLess:
		return cmp < 0
	case sql.OpGreater:
		return cmp > 0
	case sql.OpEqual:
		return cmp == 0
	}
	return false
}

func filterRows(rows []sql.Row, f sql.Filter) []sql.Row {
	out := make([]sql.Row, 0, len(rows))
	for _, r := range rows {
		if applyFilter(r, f) {
			out = append(out, r)
		}
	}
	return out
}

// projectRows copies the requested columns, in order, out of each row.
func projectRows(rows []sql.Row, idx []int) []sql.Row {
	out := make([]sql.Row, len(rows))
	for i, r := range rows {
		p := make(sql.Row, len(idx))
		for j, c := range idx {
			p[j] = r[c]
		}
		out[i] = p
	}
	return out
}

// sortRows orders rows by one column, NULL first. DESC is the reverse of
// the ascending order, so NULLs come last there.
func sortRows(rows []sql.Row, col int, desc bool) {
	slices.SortStableFunc(rows, func(a, b sql.Row) int {
		return a[col].Compare(b[col])
	})
	if desc {
		slices.Reverse(rows)
	}
}

// aggregate computes SUM, AVG or COUNT over rows. NULLs of the aggregated
// column are skipped; COUNT(*) counts every row. AVG truncates toward
// zero and is NaN when there is nothing to average.
func aggregate(t *sql.Table, rows []sql.Row, agg *sql.Aggregate) *AggregateResult {
	res := &AggregateResult{Title: agg.Title(t)}

	var sum, n int64
	for _, r := range rows {
		if agg.Column == sql.StarColumn {
			n++
			continue
		}
		v := r[agg.Column]
		if v.Null {
			continue
		}
		n++
		if v.Type == sql.TypeInt {
			sum += v.I64
		}
	}

	switch agg.Func {
	case sql.AggSum:
		res.Value = sum
	case sql.AggAvg:
		if n == 0 {
			res.NaN = true
		} else {
			res.Value = sum / n
		}
	case sql.AggCount:
		res.Value = n
	}
	return res
}
