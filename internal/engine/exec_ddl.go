package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tabDB/internal/catalog"
	"tabDB/internal/dberr"
	"tabDB/internal/logging"
	"tabDB/internal/sql"
)

func (e *DBEngine) execCreateTable(cat *catalog.Catalog, s *sql.CreateTableStmt, res *Result) error {
	res.Table = s.Table.Name
	if err := cat.Insert(s.Table); err != nil {
		return err
	}
	if err := e.store.CreateTable(s.Table); err != nil {
		if _, rerr := cat.Remove(s.Table.Name); rerr != nil {
			logging.WithTable(s.Table.Name).Error("catalog entry left without table file", "error", rerr)
		}
		return err
	}
	return nil
}

func (e *DBEngine) execDropTable(cat *catalog.Catalog, s *sql.DropTableStmt, res *Result) error {
	t, err := cat.Remove(s.TableName)
	if err != nil {
		return err
	}
	res.Table = t.Name
	return e.store.DropTable(t)
}

func (e *DBEngine) execListTables(cat *catalog.Catalog, res *Result) error {
	for _, t := range cat.Tables() {
		res.Tables = append(res.Tables, t.Name)
	}
	return nil
}

func (e *DBEngine) execListSchema(s *sql.ListSchemaStmt, res *Result) error {
	res.Table = s.Table.Name
	res.Schema = schemaReport(s.Table)
	if s.ReportFile == "" {
		return nil
	}

	path := filepath.Join(e.cfg.Dir, s.ReportFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return dberr.Wrap(dberr.FileOpenError, err, "open report "+s.ReportFile)
	}
	defer f.Close()
	if _, err := f.WriteString(res.Schema); err != nil {
		return dberr.Wrap(dberr.FileOpenError, err, "write report "+s.ReportFile)
	}
	return nil
}

// schemaReport dumps the descriptor fields of t and then each column's
// fields, in the stored representation.
func schemaReport(t *sql.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Table PD size            (tpd_size)    = %d\n", catalog.DescriptorSize(t))
	fmt.Fprintf(&b, "Table Name               (table_name)  = %s\n", t.Name)
	fmt.Fprintf(&b, "Number of Columns        (num_columns) = %d\n", len(t.Columns))
	fmt.Fprintf(&b, "Column Descriptor Offset (cd_offset)   = %d\n", catalog.CDOffset)
	fmt.Fprintf(&b, "Table PD Flags           (tpd_flags)   = %d\n\n", t.Flags)

	for _, c := range t.Columns {
		notNull := 0
		if c.NotNull {
			notNull = 1
		}
		fmt.Fprintf(&b, "Column Name   (col_name) = %s\n", c.Name)
		fmt.Fprintf(&b, "Column Id     (col_id)   = %d\n", c.ID)
		fmt.Fprintf(&b, "Column Type   (col_type) = %d\n", catalog.TypeCode(c.Type))
		fmt.Fprintf(&b, "Column Length (col_len)  = %d\n", c.Length)
		fmt.Fprintf(&b, "Not Null flag (not_null) = %d\n\n", notNull)
	}
	return b.String()
}
