package sql

import "strconv"

// Engine-wide limits.
const (
	MaxIdentLen     = 16
	MaxStringLen    = 255
	MaxColumns      = 16
	MaxRows         = 1000
	MaxConditions   = 2
	IntColumnLength = 4
)

// DataType represents the logical type of a value in a column.
type DataType int

const (
	TypeInt DataType = iota
	TypeString
)

func (t DataType) String() string {
	switch t {
	case TypeInt:
		return "INT"
	case TypeString:
		return "CHAR"
	default:
		return "UNKNOWN"
	}
}

// Value represents a single cell in a table (one column in one row).
// Only the field matching Type should be read, and neither is meaningful
// when Null is set.
type Value struct {
	Type DataType
	Null bool

	I64 int64  // for TypeInt
	S   string // for TypeString
}

// IntValue, StringValue and NullValue build Values.
func IntValue(i int64) Value     { return Value{Type: TypeInt, I64: i} }
func StringValue(s string) Value { return Value{Type: TypeString, S: s} }
func NullValue(t DataType) Value { return Value{Type: t, Null: true} }

// String renders the value the way result tables show it. NULL renders
// as the empty string; callers choose their own placeholder.
func (v Value) String() string {
	if v.Null {
		return ""
	}
	if v.Type == TypeInt {
		return strconv.FormatInt(v.I64, 10)
	}
	return v.S
}

// Equal reports whether two values are identical, NULL included.
func (v Value) Equal(o Value) bool {
	if v.Null || o.Null {
		return v.Null == o.Null
	}
	if v.Type != o.Type {
		return false
	}
	if v.Type == TypeInt {
		return v.I64 == o.I64
	}
	return v.S == o.S
}

// Compare orders two values of the same column. NULL sorts before every
// non-NULL value; strings compare byte-wise.
func (v Value) Compare(o Value) int {
	switch {
	case v.Null && o.Null:
		return 0
	case v.Null:
		return -1
	case o.Null:
		return 1
	}
	if v.Type == TypeInt {
		switch {
		case v.I64 < o.I64:
			return -1
		case v.I64 > o.I64:
			return 1
		}
		return 0
	}
	switch {
	case v.S < o.S:
		return -1
	case v.S > o.S:
		return 1
	}
	return 0
}

// Row represents one record in a table: a slice of Values, one per column.
type Row []Value

// Column describes metadata for a single column in a table.
type Column struct {
	ID      int
	Name    string
	Type    DataType
	Length  int // 4 for INT, n for CHAR(n)
	NotNull bool
}

// Table is a catalog entry: a named, ordered list of columns.
type Table struct {
	Name    string
	Columns []Column
	Flags   int32
}

// ColumnIndex resolves a column by exact (case-sensitive) name.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Catalog resolves table names while statements are validated.
// Lookups are case-insensitive.
type Catalog interface {
	Lookup(name string) (*Table, bool)
}
