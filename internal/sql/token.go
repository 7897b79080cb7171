package sql

import "strings"

// Class is the lexical category of a token.
type Class int

const (
	ClassKeyword Class = iota + 1
	ClassIdentifier
	ClassSymbol
	ClassTypeName
	ClassConstant
	ClassFunction
	ClassTerminator
	ClassError
)

func (c Class) String() string {
	switch c {
	case ClassKeyword:
		return "keyword"
	case ClassIdentifier:
		return "identifier"
	case ClassSymbol:
		return "symbol"
	case ClassTypeName:
		return "type"
	case ClassConstant:
		return "constant"
	case ClassFunction:
		return "function"
	case ClassTerminator:
		return "terminator"
	case ClassError:
		return "error"
	default:
		return "unknown"
	}
}

// Kind is the value code of a token within its class.
type Kind int

// Keyword codes run contiguously from 10 in keyword-table order.
const (
	TypeIntKw Kind = iota + 10
	TypeCharKw
	KwCreate
	KwTable
	KwNot
	KwNull
	KwDrop
	KwList
	KwSchema
	KwFor
	KwTo
	KwInsert
	KwInto
	KwValues
	KwDelete
	KwFrom
	KwWhere
	KwUpdate
	KwSet
	KwSelect
	KwOrder
	KwBy
	KwDesc
	KwIs
	KwAnd
	KwOr
	FnSum
	FnAvg
	FnCount
)

const (
	SymLeftParen Kind = iota + 70
	SymRightParen
	SymComma
	SymStar
	SymEqual
	SymLess
	SymGreater
)

const (
	Ident         Kind = 85
	IntLiteral    Kind = 90
	StringLiteral Kind = 91
	EOC           Kind = 95
	Invalid       Kind = 99
)

var keywords = []string{
	"int", "char", "create", "table", "not", "null", "drop", "list", "schema",
	"for", "to", "insert", "into", "values", "delete", "from", "where",
	"update", "set", "select", "order", "by", "desc", "is", "and", "or",
	"sum", "avg", "count",
}

var symbols = map[byte]Kind{
	'(': SymLeftParen,
	')': SymRightParen,
	',': SymComma,
	'*': SymStar,
	'=': SymEqual,
	'<': SymLess,
	'>': SymGreater,
}

// lookupKeyword matches word case-insensitively against the keyword table.
func lookupKeyword(word string) (Kind, Class, bool) {
	for i, kw := range keywords {
		if strings.EqualFold(kw, word) {
			k := TypeIntKw + Kind(i)
			switch {
			case k <= TypeCharKw:
				return k, ClassTypeName, true
			case k >= FnSum:
				return k, ClassFunction, true
			default:
				return k, ClassKeyword, true
			}
		}
	}
	return 0, 0, false
}

// Token is one lexeme of a statement.
type Token struct {
	Text   string
	Class  Class
	Kind   Kind
	Offset int // byte offset in the statement
	Index  int // position in the token sequence
}

// IsName reports whether the token may be used as a table or column name.
// Keywords and type names are accepted as names; the grammar position
// decides what they mean.
func (t Token) IsName() bool {
	return t.Class == ClassIdentifier || t.Class == ClassKeyword || t.Class == ClassTypeName
}
