package sql

import (
	"tabDB/internal/dberr"
)

// Analyze validates a token sequence produced by Tokenize. Table and
// column names are resolved through cat; the catalog is never modified.
// Failures are *dberr.Error values pinned to the offending token.
func Analyze(tokens []Token, cat Catalog) (Statement, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EOC {
		return nil, dberr.New(dberr.InvalidStatement, "token sequence is not terminated")
	}
	p := &parser{tokens: tokens, cat: cat}

	head := p.cur()
	switch head.Kind {
	case KwCreate:
		if p.peek().Kind == KwTable {
			p.advanceN(2)
			return p.parseCreateTable()
		}
	case KwDrop:
		if p.peek().Kind == KwTable {
			p.advanceN(2)
			return p.parseDropTable()
		}
	case KwList:
		switch p.peek().Kind {
		case KwTable:
			p.advanceN(2)
			return p.parseListTables()
		case KwSchema:
			p.advanceN(2)
			return p.parseListSchema()
		}
	case KwInsert:
		if p.peek().Kind == KwInto {
			p.advanceN(2)
			return p.parseInsert()
		}
	case KwDelete:
		if p.peek().Kind == KwFrom {
			p.advanceN(2)
			return p.parseDelete()
		}
	case KwUpdate:
		p.advance()
		return p.parseUpdate()
	case KwSelect:
		p.advance()
		return p.parseSelect()
	}

	switch head.Kind {
	case KwCreate, KwDrop, KwList, KwInsert, KwDelete:
		return nil, p.errAt(dberr.InvalidStatement, p.peek(), "unexpected word after "+head.Text)
	}
	return nil, p.errAt(dberr.InvalidStatement, head, "unknown statement")
}

// parser walks the token slice with one token of lookahead.
type parser struct {
	tokens []Token
	pos    int
	cat    Catalog
}

func (p *parser) cur() Token { return p.tokens[p.pos] }

func (p *parser) peek() Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

// advance moves to the next token. It never moves past EOC.
func (p *parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

func (p *parser) advanceN(n int) {
	for i := 0; i < n; i++ {
		p.advance()
	}
}

func (p *parser) errAt(code dberr.Code, tok Token, detail string) error {
	return dberr.At(code, tok.Index, tok.Text, tok.Offset, detail)
}

// expect consumes a token of the given kind or fails with code.
func (p *parser) expect(kind Kind, code dberr.Code, detail string) error {
	if p.cur().Kind != kind {
		return p.errAt(code, p.cur(), detail)
	}
	p.advance()
	return nil
}

// expectEnd requires the statement to stop at the current token.
func (p *parser) expectEnd(code dberr.Code) error {
	if p.cur().Kind != EOC {
		return p.errAt(code, p.cur(), "unexpected trailing input")
	}
	return nil
}

// table consumes a table name and resolves it in the catalog.
func (p *parser) table() (*Table, error) {
	tok := p.cur()
	if !tok.IsName() {
		return nil, p.errAt(dberr.InvalidTableName, tok, "expected a table name")
	}
	t, ok := p.cat.Lookup(tok.Text)
	if !ok {
		return nil, p.errAt(dberr.TableNotExist, tok, "table "+tok.Text+" does not exist")
	}
	p.advance()
	return t, nil
}

// column consumes a column name of t.
func (p *parser) column(t *Table) (int, error) {
	tok := p.cur()
	if !tok.IsName() {
		return 0, p.errAt(dberr.InvalidColumnName, tok, "expected a column name")
	}
	idx, ok := t.ColumnIndex(tok.Text)
	if !ok {
		return 0, p.errAt(dberr.InvalidColumnName, tok, "no column "+tok.Text+" in "+t.Name)
	}
	p.advance()
	return idx, nil
}
