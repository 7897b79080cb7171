// Package dberr defines the closed set of status codes returned by the
// engine and the error value that carries them.
//
// Every failure surfaced by a statement maps to exactly one Code. The
// numeric values are part of the external interface: the CLI prints them
// as the statement's return code, and scripts compare against them.
package dberr

import (
	"errors"
	"fmt"
)

// Code is a numeric statement status. Zero means success; every failure
// is negative.
type Code int

const (
	OK Code = 0

	InvalidToken     Code = -99
	InvalidStatement Code = -199

	FileOpenError     Code = -299
	DBFileCorruption  Code = -298
	MemoryError       Code = -297
	FileRemoveError   Code = -296
	TabFileCorruption Code = -295

	InvalidTableName        Code = -399
	DuplicateTableName      Code = -398
	TableNotExist           Code = -397
	InvalidTableDefinition  Code = -396
	InvalidColumnName       Code = -395
	DuplicateColumnName     Code = -394
	ColumnNotExist          Code = -393
	MaxColumnExceeded       Code = -392
	InvalidTypeName         Code = -391
	InvalidColumnDefinition Code = -390
	InvalidColumnLength     Code = -389
	InvalidReportFileName   Code = -388
	InvalidValue            Code = -387
	InvalidValuesCount      Code = -386
	InvalidAggregateColumn  Code = -385
	InvalidCondition        Code = -384
	InvalidConditionOperand Code = -383
	MaxRowExceeded          Code = -382
	DataTypeMismatch        Code = -381
	UnexpectedNullValue     Code = -380
	StringTooLong           Code = -379
	MaxConditionExceeded    Code = -378
)

var codeNames = map[Code]string{
	OK:                      "OK",
	InvalidToken:            "INVALID_TOKEN",
	InvalidStatement:        "INVALID_STATEMENT",
	FileOpenError:           "FILE_OPEN_ERROR",
	DBFileCorruption:        "DBFILE_CORRUPTION",
	MemoryError:             "MEMORY_ERROR",
	FileRemoveError:         "FILE_REMOVE_ERROR",
	TabFileCorruption:       "TABFILE_CORRUPTION",
	InvalidTableName:        "INVALID_TABLE_NAME",
	DuplicateTableName:      "DUPLICATE_TABLE_NAME",
	TableNotExist:           "TABLE_NOT_EXIST",
	InvalidTableDefinition:  "INVALID_TABLE_DEFINITION",
	InvalidColumnName:       "INVALID_COLUMN_NAME",
	DuplicateColumnName:     "DUPLICATE_COLUMN_NAME",
	ColumnNotExist:          "COLUMN_NOT_EXIST",
	MaxColumnExceeded:       "MAX_COLUMN_EXCEEDED",
	InvalidTypeName:         "INVALID_TYPE_NAME",
	InvalidColumnDefinition: "INVALID_COLUMN_DEFINITION",
	InvalidColumnLength:     "INVALID_COLUMN_LENGTH",
	InvalidReportFileName:   "INVALID_REPORT_FILE_NAME",
	InvalidValue:            "INVALID_VALUE",
	InvalidValuesCount:      "INVALID_VALUES_COUNT",
	InvalidAggregateColumn:  "INVALID_AGGREGATE_COLUMN",
	InvalidCondition:        "INVALID_CONDITION",
	InvalidConditionOperand: "INVALID_CONDITION_OPERAND",
	MaxRowExceeded:          "MAX_ROW_EXCEEDED",
	DataTypeMismatch:        "DATA_TYPE_MISMATCH",
	UnexpectedNullValue:     "UNEXPECTED_NULL_VALUE",
	StringTooLong:           "STRING_TOO_LONG",
	MaxConditionExceeded:    "MAX_CONDITION_EXCEEDED",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("CODE(%d)", int(c))
}

// Category groups codes by the layer that raises them.
type Category int

const (
	CategoryNone Category = iota
	// CategoryLexical covers characters the lexer cannot turn into a token.
	CategoryLexical
	// CategorySemantic covers grammar and name/type resolution failures.
	CategorySemantic
	// CategoryCapacity covers fixed limits of the engine (rows, columns, conditions).
	CategoryCapacity
	// CategoryStorage covers catalog and table file I/O, corruption and
	// memory exhaustion.
	CategoryStorage
)

func (c Category) String() string {
	switch c {
	case CategoryLexical:
		return "lexical"
	case CategorySemantic:
		return "semantic"
	case CategoryCapacity:
		return "capacity"
	case CategoryStorage:
		return "storage"
	default:
		return "none"
	}
}

// Category reports which layer a code belongs to.
func (c Code) Category() Category {
	switch {
	case c == OK:
		return CategoryNone
	case c == InvalidToken:
		return CategoryLexical
	case c == MaxColumnExceeded, c == MaxRowExceeded, c == MaxConditionExceeded:
		return CategoryCapacity
	case c >= FileOpenError && c <= TabFileCorruption:
		return CategoryStorage
	default:
		return CategorySemantic
	}
}

// NoToken marks an Error that is not tied to a position in the statement.
const NoToken = -1

// Error is a failed statement. Errors raised while validating a statement
// point at the offending token; storage errors usually do not.
type Error struct {
	Code Code

	// Token is the index of the offending token, or NoToken.
	Token int
	// Lexeme is the text of the offending token.
	Lexeme string
	// Offset is the byte offset of the token in the statement.
	Offset int

	// Detail is a short human-readable explanation.
	Detail string

	Cause error
}

func (e *Error) Error() string {
	msg := e.Code.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Token != NoToken {
		msg += fmt.Sprintf(" (at token %d %q)", e.Token, e.Lexeme)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error with the same code, so callers can write
// errors.Is(err, dberr.New(dberr.TableNotExist, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// New returns an Error that is not tied to a token.
func New(code Code, detail string) *Error {
	return &Error{Code: code, Token: NoToken, Detail: detail}
}

// Newf is New with a format string.
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// At returns an Error pinned to a token of the statement.
func At(code Code, token int, lexeme string, offset int, detail string) *Error {
	return &Error{Code: code, Token: token, Lexeme: lexeme, Offset: offset, Detail: detail}
}

// Wrap returns an Error with an underlying cause.
func Wrap(code Code, cause error, detail string) *Error {
	return &Error{Code: code, Token: NoToken, Detail: detail, Cause: cause}
}

// CodeOf extracts the status code of err. A nil error is OK; an error that
// carries no Code is reported as InvalidStatement.
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return InvalidStatement
}

// Status is CodeOf as a plain int, the value the CLI prints as rc.
func Status(err error) int {
	return int(CodeOf(err))
}
