package sql

import (
	"strconv"

	"tabDB/internal/dberr"
)

// parseCreateTable validates:
//
//	CREATE TABLE name ( col INT [NOT NULL] , col CHAR(n) [NOT NULL] ... )
func (p *parser) parseCreateTable() (Statement, error) {
	nameTok := p.cur()
	if !nameTok.IsName() {
		return nil, p.errAt(dberr.InvalidTableName, nameTok, "expected a table name")
	}
	if _, exists := p.cat.Lookup(nameTok.Text); exists {
		return nil, p.errAt(dberr.DuplicateTableName, nameTok, "table "+nameTok.Text+" already exists")
	}
	p.advance()

	if err := p.expect(SymLeftParen, dberr.InvalidTableDefinition, "expected ( after table name"); err != nil {
		return nil, err
	}

	table := &Table{Name: nameTok.Text}
	for done := false; !done; {
		if len(table.Columns) >= MaxColumns {
			return nil, p.errAt(dberr.MaxColumnExceeded, p.cur(), "too many columns")
		}

		col, err := p.columnDef(table)
		if err != nil {
			return nil, err
		}
		table.Columns = append(table.Columns, col)

		switch p.cur().Kind {
		case SymRightParen:
			done = true
		case SymComma:
		default:
			return nil, p.errAt(dberr.InvalidColumnDefinition, p.cur(), "expected , or )")
		}
		p.advance()
	}

	if err := p.expectEnd(dberr.InvalidTableDefinition); err != nil {
		return nil, err
	}
	return &CreateTableStmt{Table: table}, nil
}

// columnDef parses "name type [NOT NULL]" and leaves the parser on the
// following separator.
func (p *parser) columnDef(table *Table) (Column, error) {
	nameTok := p.cur()
	if !nameTok.IsName() {
		return Column{}, p.errAt(dberr.InvalidColumnName, nameTok, "expected a column name")
	}
	if _, dup := table.ColumnIndex(nameTok.Text); dup {
		return Column{}, p.errAt(dberr.DuplicateColumnName, nameTok, "duplicate column "+nameTok.Text)
	}
	p.advance()

	col := Column{ID: len(table.Columns), Name: nameTok.Text}

	typeTok := p.cur()
	if typeTok.Class != ClassTypeName {
		return Column{}, p.errAt(dberr.InvalidTypeName, typeTok, "expected INT or CHAR")
	}
	p.advance()

	if typeTok.Kind == TypeIntKw {
		col.Type = TypeInt
		col.Length = IntColumnLength
	} else {
		col.Type = TypeString
		if err := p.expect(SymLeftParen, dberr.InvalidColumnDefinition, "expected ( after CHAR"); err != nil {
			return Column{}, err
		}
		lenTok := p.cur()
		n, err := strconv.Atoi(lenTok.Text)
		if lenTok.Kind != IntLiteral || err != nil || n < 1 || n > MaxStringLen {
			return Column{}, p.errAt(dberr.InvalidColumnLength, lenTok, "CHAR length must be 1..255")
		}
		col.Length = n
		p.advance()
		if err := p.expect(SymRightParen, dberr.InvalidColumnDefinition, "expected ) after CHAR length"); err != nil {
			return Column{}, err
		}
	}

	switch p.cur().Kind {
	case KwNot:
		if p.peek().Kind != KwNull {
			return Column{}, p.errAt(dberr.InvalidColumnDefinition, p.cur(), "expected NULL after NOT")
		}
		col.NotNull = true
		p.advanceN(2)
	case SymComma, SymRightParen:
	default:
		return Column{}, p.errAt(dberr.InvalidColumnDefinition, p.cur(), "expected NOT NULL, , or )")
	}
	return col, nil
}
