package engine

import "tabDB/internal/sql"

// Kind names the statement a Result belongs to.
type Kind int

const (
	KindUnknown Kind = iota
	KindCreateTable
	KindDropTable
	KindListTables
	KindListSchema
	KindInsert
	KindSelect
	KindUpdate
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindCreateTable:
		return "CREATE TABLE"
	case KindDropTable:
		return "DROP TABLE"
	case KindListTables:
		return "LIST TABLE"
	case KindListSchema:
		return "LIST SCHEMA"
	case KindInsert:
		return "INSERT"
	case KindSelect:
		return "SELECT"
	case KindUpdate:
		return "UPDATE"
	case KindDelete:
		return "DELETE"
	}
	return "UNKNOWN"
}

// Mutates reports whether statements of this kind change the database
// and are therefore written to the audit log.
func (k Kind) Mutates() bool {
	switch k {
	case KindCreateTable, KindDropTable, KindInsert, KindUpdate, KindDelete:
		return true
	}
	return false
}

func kindOf(stmt sql.Statement) Kind {
	switch stmt.(type) {
	case *sql.CreateTableStmt:
		return KindCreateTable
	case *sql.DropTableStmt:
		return KindDropTable
	case *sql.ListTablesStmt:
		return KindListTables
	case *sql.ListSchemaStmt:
		return KindListSchema
	case *sql.InsertStmt:
		return KindInsert
	case *sql.SelectStmt:
		return KindSelect
	case *sql.UpdateStmt:
		return KindUpdate
	case *sql.DeleteStmt:
		return KindDelete
	}
	return KindUnknown
}

// AggregateResult is the single value of an aggregate SELECT.
type AggregateResult struct {
	Title string // e.g. "AVG(copies)"
	Value int64
	NaN   bool // AVG over zero non-NULL values
}

// Result is what a statement produced. Only the fields of its Kind are
// set; Tokens is filled for every statement that got past the lexer,
// failed ones included.
type Result struct {
	Kind   Kind
	Tokens []sql.Token

	// Table is the catalog spelling of the table the statement used.
	Table string

	// SELECT without an aggregate.
	Columns []sql.Column
	Rows    []sql.Row

	// SELECT with an aggregate.
	Aggregate *AggregateResult

	// LIST TABLE, in creation order.
	Tables []string

	// LIST SCHEMA report text.
	Schema string

	// Rows inserted, updated or deleted.
	Affected int
}
