package sql

// Statement is the common interface for all validated statements.
// Every table and column reference in a Statement has already been
// resolved against the catalog.
type Statement interface {
	stmtNode()
}

// CreateTableStmt represents a validated CREATE TABLE statement.
type CreateTableStmt struct {
	Table *Table
}

// DropTableStmt represents DROP TABLE. TableName is the catalog spelling.
type DropTableStmt struct {
	TableName string
}

// ListTablesStmt represents LIST TABLE.
type ListTablesStmt struct{}

// ListSchemaStmt represents LIST SCHEMA FOR t [TO file].
type ListSchemaStmt struct {
	Table      *Table
	ReportFile string // empty when no TO clause was given
}

// InsertStmt represents INSERT INTO t VALUES (...). Values are in column order
// and already type-checked.
type InsertStmt struct {
	Table  *Table
	Values Row
}

// AggFunc is an aggregate function applied by SELECT.
type AggFunc int

const (
	AggSum AggFunc = iota + 1
	AggAvg
	AggCount
)

func (f AggFunc) String() string {
	switch f {
	case AggSum:
		return "SUM"
	case AggAvg:
		return "AVG"
	case AggCount:
		return "COUNT"
	}
	return "?"
}

// StarColumn is the Aggregate column of COUNT(*).
const StarColumn = -1

// Aggregate is the single aggregate wrapper of a SELECT.
type Aggregate struct {
	Func   AggFunc
	Column int // index into the table's columns, or StarColumn
}

// Title is the aggregate's display header, e.g. "SUM(copies)".
func (a *Aggregate) Title(t *Table) string {
	arg := "*"
	if a.Column != StarColumn {
		arg = t.Columns[a.Column].Name
	}
	return a.Func.String() + "(" + arg + ")"
}

// OrderBy sorts the SELECT result by one column.
type OrderBy struct {
	Column int
	Desc   bool
}

// SelectStmt represents a validated SELECT. Exactly one of Aggregate and
// Columns is set; a wildcard has been expanded into Columns.
type SelectStmt struct {
	Table     *Table
	Aggregate *Aggregate
	Columns   []int
	Where     Filter
	OrderBy   *OrderBy
}

// UpdateStmt represents UPDATE t SET col = value [WHERE ...].
type UpdateStmt struct {
	Table  *Table
	Column int
	Value  Value
	Where  Filter
}

// DeleteStmt represents DELETE FROM t [WHERE ...].
type DeleteStmt struct {
	Table *Table
	Where Filter
}

func (*CreateTableStmt) stmtNode() {}
func (*DropTableStmt) stmtNode()   {}
func (*ListTablesStmt) stmtNode()  {}
func (*ListSchemaStmt) stmtNode()  {}
func (*InsertStmt) stmtNode()      {}
func (*SelectStmt) stmtNode()      {}
func (*UpdateStmt) stmtNode()      {}
func (*DeleteStmt) stmtNode()      {}

// Op is a WHERE comparison operator.
type Op int

const (
	OpLess Op = iota + 1
	OpGreater
	OpEqual
	OpIsNull
	OpIsNotNull
)

func (o Op) String() string {
	switch o {
	case OpLess:
		return "<"
	case OpGreater:
		return ">"
	case OpEqual:
		return "="
	case OpIsNull:
		return "IS NULL"
	case OpIsNotNull:
		return "IS NOT NULL"
	}
	return "?"
}

// Condition is one row test of a WHERE clause. Operand is unused for the
// IS [NOT] NULL operators.
type Condition struct {
	Column  int
	Op      Op
	Operand Value
}

// Filter is a WHERE clause: zero to MaxConditions conditions joined by a
// single AND or OR. An empty Filter matches every row.
type Filter struct {
	Conditions []Condition
	Or         bool
}
