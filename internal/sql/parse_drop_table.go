package sql

import "tabDB/internal/dberr"

// parseDropTable validates:
//
//	DROP TABLE name
func (p *parser) parseDropTable() (Statement, error) {
	nameTok := p.cur()
	if !nameTok.IsName() {
		return nil, p.errAt(dberr.InvalidTableName, nameTok, "expected a table name")
	}
	p.advance()

	if err := p.expectEnd(dberr.InvalidStatement); err != nil {
		return nil, err
	}

	t, ok := p.cat.Lookup(nameTok.Text)
	if !ok {
		return nil, p.errAt(dberr.TableNotExist, nameTok, "table "+nameTok.Text+" does not exist")
	}
	return &DropTableStmt{TableName: t.Name}, nil
}
