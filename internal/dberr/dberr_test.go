package dberr

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestCodeOf(t *testing.T) {
	if got := CodeOf(nil); got != OK {
		t.Fatalf("CodeOf(nil): expected OK, got %v", got)
	}

	err := fmt.Errorf("execute: %w", New(TableNotExist, "table \"x\""))
	if got := CodeOf(err); got != TableNotExist {
		t.Fatalf("CodeOf wrapped: expected %v, got %v", TableNotExist, got)
	}
	if Status(err) != -397 {
		t.Fatalf("Status: expected -397, got %d", Status(err))
	}

	if got := CodeOf(errors.New("plain")); got != InvalidStatement {
		t.Fatalf("CodeOf plain error: expected %v, got %v", InvalidStatement, got)
	}
}

func TestErrorIsMatchesCode(t *testing.T) {
	err := At(InvalidColumnName, 3, "bogus", 12, "")
	if !errors.Is(err, New(InvalidColumnName, "")) {
		t.Fatalf("expected errors.Is to match on code")
	}
	if errors.Is(err, New(InvalidTableName, "")) {
		t.Fatalf("errors.Is matched a different code")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(FileOpenError, os.ErrNotExist, "open people.tab")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected cause to be reachable through Unwrap")
	}
	if err.Token != NoToken {
		t.Fatalf("expected NoToken, got %d", err.Token)
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		code Code
		want Category
	}{
		{OK, CategoryNone},
		{InvalidToken, CategoryLexical},
		{InvalidStatement, CategorySemantic},
		{DuplicateTableName, CategorySemantic},
		{MaxRowExceeded, CategoryCapacity},
		{MaxConditionExceeded, CategoryCapacity},
		{DBFileCorruption, CategoryStorage},
		{TabFileCorruption, CategoryStorage},
		{FileRemoveError, CategoryStorage},
		{FileOpenError, CategoryStorage},
		{MemoryError, CategoryStorage},
		{MaxColumnExceeded, CategoryCapacity},
		{StringTooLong, CategorySemantic},
	}
	for _, tt := range tests {
		if got := tt.code.Category(); got != tt.want {
			t.Errorf("%v.Category(): expected %v, got %v", tt.code, tt.want, got)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	err := At(InvalidValue, 7, "abc", 30, "expected a literal")
	want := `INVALID_VALUE: expected a literal (at token 7 "abc")`
	if err.Error() != want {
		t.Fatalf("Error(): expected %q, got %q", want, err.Error())
	}
}
