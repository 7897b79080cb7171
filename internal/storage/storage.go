package storage

import "tabDB/internal/sql"

// Engine stores the rows of each table.
//
// Every mutation rewrites the table's whole image; there is no partial
// write and no locking. Two implementations exist:
//   - filestore: one "<table>.tab" file per table (the real engine)
//   - memstore: the same byte images kept in memory (for tests)
type Engine interface {
	// CreateTable writes an empty table image (header only).
	CreateTable(t *sql.Table) error

	// Load reads and validates a table image.
	Load(t *sql.Table) (*TableFile, error)

	// Append adds one row. tf is updated in place once the write succeeds.
	Append(tf *TableFile, row sql.Row) error

	// Rewrite replaces all rows. tf is updated in place once the write
	// succeeds.
	Rewrite(tf *TableFile, rows []sql.Row) error

	// DropTable deletes the table image.
	DropTable(t *sql.Table) error
}

// Lister is implemented by engines that can enumerate stored images
// without the catalog.
type Lister interface {
	ListTables() ([]string, error)
}

// TableFile is a loaded table: its header and decoded rows.
type TableFile struct {
	Table  *sql.Table
	Header Header
	Rows   []sql.Row
}

// NewTableFile returns the image of an empty table.
func NewTableFile(t *sql.Table) *TableFile {
	return &TableFile{Table: t, Header: newHeader(t, 0)}
}

// WithRows returns a new TableFile holding rows, with the header
// recomputed. The receiver is not modified.
func (tf *TableFile) WithRows(rows []sql.Row) *TableFile {
	return &TableFile{Table: tf.Table, Header: newHeader(tf.Table, len(rows)), Rows: rows}
}

// Appended is WithRows with one more row. It fails with MaxRowExceeded
// when the table is full.
func (tf *TableFile) Appended(row sql.Row) (*TableFile, error) {
	if err := checkRowLimit(tf); err != nil {
		return nil, err
	}
	rows := make([]sql.Row, len(tf.Rows), len(tf.Rows)+1)
	copy(rows, tf.Rows)
	return tf.WithRows(append(rows, row)), nil
}

// Clone deep-copies the rows so the copy can be modified freely.
func (tf *TableFile) Clone() *TableFile {
	rows := make([]sql.Row, len(tf.Rows))
	for i, r := range tf.Rows {
		rows[i] = append(sql.Row(nil), r...)
	}
	return &TableFile{Table: tf.Table, Header: tf.Header, Rows: rows}
}
