package sql

import "tabDB/internal/dberr"

// parseDelete validates:
//
//	DELETE FROM name [WHERE condition]
func (p *parser) parseDelete() (Statement, error) {
	t, err := p.table()
	if err != nil {
		return nil, err
	}
	where, err := p.parseWhere(t, 1)
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(dberr.InvalidStatement); err != nil {
		return nil, err
	}
	return &DeleteStmt{Table: t, Where: where}, nil
}
