package sql

import "tabDB/internal/dberr"

var aggFuncs = map[Kind]AggFunc{FnSum: AggSum, FnAvg: AggAvg, FnCount: AggCount}

// parseSelect validates:
//
//	SELECT * | col [, col ...] | SUM(col) | AVG(col) | COUNT(col|*)
//	FROM name [WHERE ...] [ORDER BY col [DESC]]
//
// Column names are resolved only once the table is known.
func (p *parser) parseSelect() (Statement, error) {
	var (
		agg      AggFunc
		fields   []Token
		wildcard bool
	)

	if p.cur().Class == ClassFunction && p.peek().Kind == SymLeftParen {
		agg = aggFuncs[p.cur().Kind]
		p.advanceN(2)

		arg := p.cur()
		if !arg.IsName() && arg.Kind != SymStar {
			return nil, p.errAt(dberr.InvalidColumnName, arg, "expected a column name or *")
		}
		wildcard = arg.Kind == SymStar
		fields = append(fields, arg)
		p.advance()
		if err := p.expect(SymRightParen, dberr.InvalidColumnName, "expected )"); err != nil {
			return nil, err
		}
	} else {
		for {
			tok := p.cur()
			if !tok.IsName() && tok.Kind != SymStar {
				return nil, p.errAt(dberr.InvalidColumnName, tok, "expected a column name or *")
			}
			if wildcard || (tok.Kind == SymStar && len(fields) > 0) {
				return nil, p.errAt(dberr.InvalidColumnName, tok, "* must be the only projection")
			}
			wildcard = tok.Kind == SymStar
			fields = append(fields, tok)
			p.advance()

			if p.cur().Kind != SymComma {
				break
			}
			p.advance()
		}
	}

	if err := p.expect(KwFrom, dberr.InvalidStatement, "expected FROM"); err != nil {
		return nil, err
	}
	t, err := p.table()
	if err != nil {
		return nil, err
	}

	stmt := &SelectStmt{Table: t}
	if agg != 0 {
		a, err := p.resolveAggregate(t, agg, fields[0])
		if err != nil {
			return nil, err
		}
		stmt.Aggregate = a
	} else if wildcard {
		stmt.Columns = make([]int, len(t.Columns))
		for i := range t.Columns {
			stmt.Columns[i] = i
		}
	} else {
		for _, tok := range fields {
			idx, ok := t.ColumnIndex(tok.Text)
			if !ok {
				return nil, p.errAt(dberr.InvalidColumnName, tok, "no column "+tok.Text+" in "+t.Name)
			}
			stmt.Columns = append(stmt.Columns, idx)
		}
	}

	if stmt.Where, err = p.parseWhere(t, MaxConditions); err != nil {
		return nil, err
	}

	if p.cur().Kind == KwOrder {
		p.advance()
		if err := p.expect(KwBy, dberr.InvalidStatement, "expected BY after ORDER"); err != nil {
			return nil, err
		}
		col, err := p.column(t)
		if err != nil {
			return nil, err
		}
		stmt.OrderBy = &OrderBy{Column: col}
		if p.cur().Kind == KwDesc {
			stmt.OrderBy.Desc = true
			p.advance()
		}
	}

	if err := p.expectEnd(dberr.InvalidStatement); err != nil {
		return nil, err
	}
	return stmt, nil
}

// resolveAggregate checks the aggregate argument against t. SUM and AVG
// need a single INT column; COUNT takes any column or *.
func (p *parser) resolveAggregate(t *Table, fn AggFunc, arg Token) (*Aggregate, error) {
	if arg.Kind == SymStar {
		if fn != AggCount {
			return nil, p.errAt(dberr.InvalidAggregateColumn, arg, fn.String()+" needs an INT column")
		}
		return &Aggregate{Func: fn, Column: StarColumn}, nil
	}

	idx, ok := t.ColumnIndex(arg.Text)
	if !ok {
		return nil, p.errAt(dberr.InvalidColumnName, arg, "no column "+arg.Text+" in "+t.Name)
	}
	if fn != AggCount && t.Columns[idx].Type != TypeInt {
		return nil, p.errAt(dberr.InvalidAggregateColumn, arg, fn.String()+" needs an INT column")
	}
	return &Aggregate{Func: fn, Column: idx}, nil
}
