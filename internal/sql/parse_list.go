package sql

import "tabDB/internal/dberr"

// parseListTables validates:
//
//	LIST TABLE
func (p *parser) parseListTables() (Statement, error) {
	if err := p.expectEnd(dberr.InvalidStatement); err != nil {
		return nil, err
	}
	return &ListTablesStmt{}, nil
}

// parseListSchema validates:
//
//	LIST SCHEMA FOR name [TO report]
//
// The table is resolved only after the whole statement has been read.
func (p *parser) parseListSchema() (Statement, error) {
	if err := p.expect(KwFor, dberr.InvalidStatement, "expected FOR"); err != nil {
		return nil, err
	}

	nameTok := p.cur()
	if !nameTok.IsName() {
		return nil, p.errAt(dberr.InvalidTableName, nameTok, "expected a table name")
	}
	p.advance()

	stmt := &ListSchemaStmt{}
	if p.cur().Kind == KwTo {
		p.advance()
		fileTok := p.cur()
		if !fileTok.IsName() {
			return nil, p.errAt(dberr.InvalidReportFileName, fileTok, "expected a report file name")
		}
		stmt.ReportFile = fileTok.Text
		p.advance()
	}

	if err := p.expectEnd(dberr.InvalidStatement); err != nil {
		return nil, err
	}

	t, ok := p.cat.Lookup(nameTok.Text)
	if !ok {
		return nil, p.errAt(dberr.TableNotExist, nameTok, "table "+nameTok.Text+" does not exist")
	}
	stmt.Table = t
	return stmt, nil
}
