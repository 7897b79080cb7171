package sql

import (
	"strings"

	"tabDB/internal/dberr"
)

const (
	wordBreak   = " (),<>="
	numberBreak = " ),"
)

// lexer scans one statement left to right.
type lexer struct {
	input  string
	pos    int
	tokens []Token
}

// Tokenize splits a statement into tokens. A successful scan always ends
// with an EOC terminator token. On a malformed lexeme scanning stops: the
// tokens read so far plus the error token are returned together with an
// InvalidToken error pinned to it.
func Tokenize(statement string) ([]Token, error) {
	l := &lexer{input: statement}
	for {
		for l.pos < len(l.input) && l.input[l.pos] == ' ' {
			l.pos++
		}
		if l.pos >= len(l.input) {
			l.emit("", ClassTerminator, EOC, l.pos)
			return l.tokens, nil
		}

		start := l.pos
		ch := l.input[l.pos]
		var err error
		switch {
		case isLetter(ch):
			err = l.word(start)
		case isDigit(ch):
			err = l.number(start)
		case symbols[ch] != 0:
			l.pos++
			l.emit(l.input[start:l.pos], ClassSymbol, symbols[ch], start)
		case ch == '\'':
			err = l.quoted(start)
		default:
			l.pos++
			err = l.fail(l.input[start:l.pos], start, "unexpected character")
		}
		if err != nil {
			return l.tokens, err
		}
	}
}

func (l *lexer) emit(text string, class Class, kind Kind, offset int) {
	l.tokens = append(l.tokens, Token{
		Text:   text,
		Class:  class,
		Kind:   kind,
		Offset: offset,
		Index:  len(l.tokens),
	})
}

func (l *lexer) fail(text string, offset int, detail string) error {
	l.emit(text, ClassError, Invalid, offset)
	return dberr.At(dberr.InvalidToken, len(l.tokens)-1, text, offset, detail)
}

// breakFollows reports whether the byte at pos may end a lexeme.
func (l *lexer) breakFollows(set string) bool {
	return l.pos >= len(l.input) || strings.IndexByte(set, l.input[l.pos]) >= 0
}

func (l *lexer) word(start int) error {
	for l.pos < len(l.input) && (isLetter(l.input[l.pos]) || isDigit(l.input[l.pos]) || l.input[l.pos] == '_') {
		l.pos++
	}
	if !l.breakFollows(wordBreak) {
		l.pos++
		return l.fail(l.input[start:l.pos], start, "invalid character after word")
	}

	text := l.input[start:l.pos]
	if kind, class, ok := lookupKeyword(text); ok {
		l.emit(text, class, kind, start)
		return nil
	}
	if len(text) > MaxIdentLen {
		return l.fail(text, start, "identifier too long")
	}
	l.emit(text, ClassIdentifier, Ident, start)
	return nil
}

func (l *lexer) number(start int) error {
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	if !l.breakFollows(numberBreak) {
		l.pos++
		return l.fail(l.input[start:l.pos], start, "invalid character after number")
	}
	l.emit(l.input[start:l.pos], ClassConstant, IntLiteral, start)
	return nil
}

func (l *lexer) quoted(start int) error {
	end := strings.IndexByte(l.input[start+1:], '\'')
	if end < 0 {
		l.pos = len(l.input)
		return l.fail(l.input[start+1:], start, "unterminated string literal")
	}
	text := l.input[start+1 : start+1+end]
	l.pos = start + end + 2
	if len(text) > MaxStringLen {
		return l.fail(text, start, "string literal too long")
	}
	l.emit(text, ClassConstant, StringLiteral, start)
	return nil
}

func isLetter(ch byte) bool { return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' }
func isDigit(ch byte) bool  { return ch >= '0' && ch <= '9' }
