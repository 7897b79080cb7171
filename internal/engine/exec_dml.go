package engine

import (
	"tabDB/internal/logging"
	"tabDB/internal/sql"
)

func (e *DBEngine) execInsert(s *sql.InsertStmt, res *Result) error {
	res.Table = s.Table.Name
	tf, err := e.store.Load(s.Table)
	if err != nil {
		return err
	}
	if err := e.store.Append(tf, s.Values); err != nil {
		return err
	}
	res.Affected = 1
	return nil
}

func (e *DBEngine) execSelect(s *sql.SelectStmt, res *Result) error {
	res.Table = s.Table.Name
	tf, err := e.store.Load(s.Table)
	if err != nil {
		return err
	}

	rows := filterRows(tf.Rows, s.Where)
	if s.Aggregate != nil {
		res.Aggregate = aggregate(s.Table, rows, s.Aggregate)
		return nil
	}

	if s.OrderBy != nil {
		sortRows(rows, s.OrderBy.Column, s.OrderBy.Desc)
	}
	res.Columns = make([]sql.Column, len(s.Columns))
	for i, idx := range s.Columns {
		res.Columns[i] = s.Table.Columns[idx]
	}
	res.Rows = projectRows(rows, s.Columns)
	return nil
}

// execUpdate rewrites the table only when at least one matching row
// actually changes value.
func (e *DBEngine) execUpdate(s *sql.UpdateStmt, res *Result) error {
	res.Table = s.Table.Name
	tf, err := e.store.Load(s.Table)
	if err != nil {
		return err
	}

	next := tf.Clone()
	for _, row := range next.Rows {
		if !applyFilter(row, s.Where) || row[s.Column].Equal(s.Value) {
			continue
		}
		row[s.Column] = s.Value
		res.Affected++
	}

	if res.Affected == 0 {
		logging.WithTable(s.Table.Name).Info("no records were updated")
		return nil
	}
	return e.store.Rewrite(tf, next.Rows)
}

func (e *DBEngine) execDelete(s *sql.DeleteStmt, res *Result) error {
	res.Table = s.Table.Name
	tf, err := e.store.Load(s.Table)
	if err != nil {
		return err
	}

	kept := make([]sql.Row, 0, len(tf.Rows))
	for _, row := range tf.Rows {
		if applyFilter(row, s.Where) {
			res.Affected++
			continue
		}
		kept = append(kept, row)
	}

	if res.Affected == 0 {
		logging.WithTable(s.Table.Name).Info("no records were deleted")
		return nil
	}
	return e.store.Rewrite(tf, kept)
}
