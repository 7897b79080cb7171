package sql

import (
	"errors"
	"strings"
	"testing"

	"tabDB/internal/dberr"
)

func TestTokenize_CreateTable(t *testing.T) {
	toks, err := Tokenize("create table BOOK(title char(50) NOT NULL, copies int)")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	want := []struct {
		text  string
		class Class
		kind  Kind
	}{
		{"create", ClassKeyword, KwCreate},
		{"table", ClassKeyword, KwTable},
		{"BOOK", ClassIdentifier, Ident},
		{"(", ClassSymbol, SymLeftParen},
		{"title", ClassIdentifier, Ident},
		{"char", ClassTypeName, TypeCharKw},
		{"(", ClassSymbol, SymLeftParen},
		{"50", ClassConstant, IntLiteral},
		{")", ClassSymbol, SymRightParen},
		{"NOT", ClassKeyword, KwNot},
		{"NULL", ClassKeyword, KwNull},
		{",", ClassSymbol, SymComma},
		{"copies", ClassIdentifier, Ident},
		{"int", ClassTypeName, TypeIntKw},
		{")", ClassSymbol, SymRightParen},
		{"", ClassTerminator, EOC},
	}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(toks), toks)
	}
	for i, w := range want {
		got := toks[i]
		if got.Text != w.text || got.Class != w.class || got.Kind != w.kind {
			t.Fatalf("token %d: expected (%q, %v, %d), got (%q, %v, %d)",
				i, w.text, w.class, w.kind, got.Text, got.Class, got.Kind)
		}
		if got.Index != i {
			t.Fatalf("token %d: Index = %d", i, got.Index)
		}
	}
}

func TestTokenize_KeywordValues(t *testing.T) {
	// Keyword codes follow keyword-table order starting at 10.
	for i, kw := range keywords {
		toks, err := Tokenize(strings.ToUpper(kw))
		if err != nil {
			t.Fatalf("Tokenize(%q) failed: %v", kw, err)
		}
		if toks[0].Kind != Kind(10+i) {
			t.Fatalf("%q: expected kind %d, got %d", kw, 10+i, toks[0].Kind)
		}
	}

	toks, _ := Tokenize("count sum avg")
	for _, tok := range toks[:3] {
		if tok.Class != ClassFunction {
			t.Fatalf("%q: expected function class, got %v", tok.Text, tok.Class)
		}
	}
}

func TestTokenize_SymbolsAndLiterals(t *testing.T) {
	toks, err := Tokenize("a<1,b>'x y'=*  ")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	kinds := []Kind{Ident, SymLess, IntLiteral, SymComma, Ident, SymGreater, StringLiteral, SymEqual, SymStar, EOC}
	if len(toks) != len(kinds) {
		t.Fatalf("expected %d tokens, got %d", len(kinds), len(toks))
	}
	for i, k := range kinds {
		if toks[i].Kind != k {
			t.Fatalf("token %d (%q): expected kind %d, got %d", i, toks[i].Text, k, toks[i].Kind)
		}
	}
	if toks[6].Text != "x y" {
		t.Fatalf("string literal: expected %q, got %q", "x y", toks[6].Text)
	}
	if toks[6].Offset != 6 {
		t.Fatalf("string literal offset: expected 6, got %d", toks[6].Offset)
	}
}

func TestTokenize_EmptyStringLiteral(t *testing.T) {
	toks, err := Tokenize("''")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if toks[0].Kind != StringLiteral || toks[0].Text != "" {
		t.Fatalf("expected empty string literal, got %+v", toks[0])
	}
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		bad   string
		index int
	}{
		{"bad char after word", "select a$b", "a$", 1},
		{"bad char after number", "values (12a)", "12a", 2},
		{"letters after digits", "1x", "1x", 0},
		{"unterminated string", "insert 'abc", "abc", 1},
		{"identifier too long", "drop table abcdefghijklmnopq", "abcdefghijklmnopq", 2},
		{"unknown character", "select @", "@", 1},
		{"semicolon", "list table;", "table;", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize(tt.input)
			if err == nil {
				t.Fatalf("expected error, got tokens %+v", toks)
			}
			var de *dberr.Error
			if !errors.As(err, &de) {
				t.Fatalf("expected *dberr.Error, got %T", err)
			}
			if de.Code != dberr.InvalidToken {
				t.Fatalf("expected %v, got %v", dberr.InvalidToken, de.Code)
			}
			if de.Token != tt.index || de.Lexeme != tt.bad {
				t.Fatalf("expected token %d %q, got %d %q", tt.index, tt.bad, de.Token, de.Lexeme)
			}
			last := toks[len(toks)-1]
			if last.Class != ClassError || last.Kind != Invalid {
				t.Fatalf("expected trailing error token, got %+v", last)
			}
		})
	}
}

func TestTokenize_SixteenCharIdentifier(t *testing.T) {
	toks, err := Tokenize("abcdefghijklmnop")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if toks[0].Class != ClassIdentifier {
		t.Fatalf("expected identifier, got %v", toks[0].Class)
	}
}
