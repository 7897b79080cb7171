package sql

import "tabDB/internal/dberr"

// parseInsert validates:
//
//	INSERT INTO name VALUES ( v1, v2, ... )
//
// where each value is an integer literal, a string literal or NULL, and
// the list matches the table's columns one to one.
func (p *parser) parseInsert() (Statement, error) {
	t, err := p.table()
	if err != nil {
		return nil, err
	}

	if p.cur().Kind != KwValues || p.peek().Kind != SymLeftParen {
		return nil, p.errAt(dberr.InvalidStatement, p.cur(), "expected VALUES (")
	}
	p.advanceN(2)

	var (
		values []Value
		toks   []Token
	)
	for done := false; !done; {
		if len(values) >= MaxColumns {
			return nil, p.errAt(dberr.MaxColumnExceeded, p.cur(), "too many values")
		}
		v, tok, err := p.storable()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		toks = append(toks, tok)
		p.advance()

		switch p.cur().Kind {
		case SymRightParen:
			done = true
		case SymComma:
		default:
			return nil, p.errAt(dberr.InvalidStatement, p.cur(), "expected , or )")
		}
		p.advance()
	}

	if err := p.expectEnd(dberr.InvalidStatement); err != nil {
		return nil, err
	}

	if len(values) != len(t.Columns) {
		// Point at the first surplus value, or at the closing paren when
		// values are missing.
		at := p.tokens[p.pos-1]
		if len(values) > len(t.Columns) {
			at = toks[len(t.Columns)]
		}
		return nil, p.errAt(dberr.InvalidValuesCount, at, "value count does not match column count")
	}

	row := make(Row, len(values))
	for i, col := range t.Columns {
		v, err := p.checkAssignable(col, values[i], toks[i])
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return &InsertStmt{Table: t, Values: row}, nil
}
