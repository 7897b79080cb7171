package sql

import "tabDB/internal/dberr"

// parseUpdate validates:
//
//	UPDATE name SET col = value [WHERE condition]
//
// Only one condition is allowed in the WHERE clause.
func (p *parser) parseUpdate() (Statement, error) {
	t, err := p.table()
	if err != nil {
		return nil, err
	}
	if err := p.expect(KwSet, dberr.InvalidStatement, "expected SET"); err != nil {
		return nil, err
	}
	col, err := p.column(t)
	if err != nil {
		return nil, err
	}
	if err := p.expect(SymEqual, dberr.InvalidStatement, "expected ="); err != nil {
		return nil, err
	}

	raw, tok, err := p.storable()
	if err != nil {
		return nil, err
	}
	v, err := p.checkAssignable(t.Columns[col], raw, tok)
	if err != nil {
		return nil, err
	}
	p.advance()

	where, err := p.parseWhere(t, 1)
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(dberr.InvalidStatement); err != nil {
		return nil, err
	}
	return &UpdateStmt{Table: t, Column: col, Value: v, Where: where}, nil
}
