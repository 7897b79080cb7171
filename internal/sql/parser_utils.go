package sql

import (
	"strconv"

	"tabDB/internal/dberr"
)

// literal converts the current token into a Value if it is an integer or
// string literal. NULL is handled by the callers that accept it.
func (p *parser) literal(code dberr.Code) (Value, error) {
	tok := p.cur()
	switch tok.Kind {
	case IntLiteral:
		i, err := strconv.ParseInt(tok.Text, 10, 32)
		if err != nil {
			return Value{}, p.errAt(code, tok, "integer out of range")
		}
		return IntValue(i), nil
	case StringLiteral:
		return StringValue(tok.Text), nil
	}
	return Value{}, p.errAt(code, tok, "expected a literal")
}

// storable reads a value destined for a column: an INT or string literal,
// or NULL. Empty strings are rejected because a zero-length field is how
// NULL is stored.
func (p *parser) storable() (Value, Token, error) {
	tok := p.cur()
	if tok.Kind == KwNull {
		return Value{Null: true}, tok, nil
	}
	v, err := p.literal(dberr.InvalidValue)
	if err != nil {
		return Value{}, tok, err
	}
	if v.Type == TypeString && v.S == "" {
		return Value{}, tok, p.errAt(dberr.InvalidValue, tok, "empty string literal")
	}
	return v, tok, nil
}

// checkAssignable verifies v can be stored in col and returns it typed
// for the column.
func (p *parser) checkAssignable(col Column, v Value, tok Token) (Value, error) {
	if v.Null {
		if col.NotNull {
			return Value{}, p.errAt(dberr.UnexpectedNullValue, tok, "column "+col.Name+" is NOT NULL")
		}
		return NullValue(col.Type), nil
	}
	if v.Type != col.Type {
		return Value{}, p.errAt(dberr.DataTypeMismatch, tok, "column "+col.Name+" is "+col.Type.String())
	}
	if v.Type == TypeString && len(v.S) > col.Length {
		return Value{}, p.errAt(dberr.StringTooLong, tok,
			"value longer than CHAR("+strconv.Itoa(col.Length)+") column "+col.Name)
	}
	return v, nil
}
