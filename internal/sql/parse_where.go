package sql

import (
	"strconv"

	"tabDB/internal/dberr"
)

// parseWhere parses an optional WHERE clause over t allowing at most
// maxConds conditions. It returns an empty Filter when the current token
// is not WHERE.
//
//	WHERE col < lit | col > lit | col = lit | col IS NULL | col IS NOT NULL
//	      [ AND|OR <condition> ]
func (p *parser) parseWhere(t *Table, maxConds int) (Filter, error) {
	var f Filter
	if p.cur().Kind != KwWhere {
		return f, nil
	}
	p.advance()

	for {
		c, err := p.condition(t)
		if err != nil {
			return Filter{}, err
		}
		f.Conditions = append(f.Conditions, c)

		join := p.cur()
		if join.Kind != KwAnd && join.Kind != KwOr {
			return f, nil
		}
		if len(f.Conditions) >= maxConds {
			return Filter{}, p.errAt(dberr.MaxConditionExceeded, join,
				"at most "+strconv.Itoa(maxConds)+" condition(s) allowed")
		}
		f.Or = join.Kind == KwOr
		p.advance()
	}
}

var compareOps = map[Kind]Op{SymLess: OpLess, SymGreater: OpGreater, SymEqual: OpEqual}

func (p *parser) condition(t *Table) (Condition, error) {
	col, err := p.column(t)
	if err != nil {
		return Condition{}, err
	}
	c := Condition{Column: col}

	switch p.cur().Kind {
	case SymLess, SymGreater, SymEqual:
		c.Op = compareOps[p.cur().Kind]
		p.advance()

		tok := p.cur()
		if tok.Kind != IntLiteral && tok.Kind != StringLiteral {
			return Condition{}, p.errAt(dberr.InvalidCondition, tok, "expected a literal operand")
		}
		v, err := p.literal(dberr.InvalidConditionOperand)
		if err != nil {
			return Condition{}, err
		}
		if v.Type != t.Columns[col].Type {
			return Condition{}, p.errAt(dberr.InvalidConditionOperand, tok,
				"operand does not match "+t.Columns[col].Type.String()+" column")
		}
		c.Operand = v
		p.advance()

	case KwIs:
		p.advance()
		if p.cur().Kind == KwNot {
			c.Op = OpIsNotNull
			p.advance()
		} else {
			c.Op = OpIsNull
		}
		if p.cur().Kind != KwNull {
			return Condition{}, p.errAt(dberr.InvalidCondition, p.cur(), "expected NULL")
		}
		p.advance()

	default:
		return Condition{}, p.errAt(dberr.InvalidCondition, p.cur(), "expected <, >, = or IS")
	}
	return c, nil
}
