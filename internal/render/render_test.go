package render

import (
	"bytes"
	"strings"
	"testing"

	"tabDB/internal/dberr"
	"tabDB/internal/engine"
	"tabDB/internal/sql"
)

func TestRowsShowsNullAndValues(t *testing.T) {
	cols := []sql.Column{
		{Name: "title", Type: sql.TypeString, Length: 10},
		{Name: "copies", Type: sql.TypeInt, Length: 4},
	}
	rows := []sql.Row{
		{sql.StringValue("ML"), sql.IntValue(1337)},
		{sql.StringValue("Go"), sql.NullValue(sql.TypeInt)},
	}

	out := Rows(cols, rows)
	for _, want := range []string{"title", "copies", "ML", "1337", "Go", "2 rows selected."} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}

	var goLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Go") {
			goLine = line
		}
	}
	if !strings.Contains(goLine, NullText) {
		t.Fatalf("NULL cell not rendered as %q: %q", NullText, goLine)
	}
}

func TestAggregate(t *testing.T) {
	out := Aggregate(&engine.AggregateResult{Title: "AVG(copies)", NaN: true})
	if !strings.Contains(out, "AVG(copies)") || !strings.Contains(out, "NaN") {
		t.Fatalf("unexpected aggregate output:\n%s", out)
	}

	out = Aggregate(&engine.AggregateResult{Title: "SUM(copies)", Value: 1342})
	if !strings.Contains(out, "1342") {
		t.Fatalf("unexpected aggregate output:\n%s", out)
	}
}

func TestTables(t *testing.T) {
	if out := Tables(nil); !strings.Contains(out, "no tables") {
		t.Fatalf("unexpected empty list output %q", out)
	}
	out := Tables([]string{"BOOK", "author"})
	if !strings.Contains(out, "BOOK\nauthor\n") {
		t.Fatalf("unexpected list output:\n%s", out)
	}
}

func TestResultAffected(t *testing.T) {
	var buf bytes.Buffer
	if err := Result(&buf, &engine.Result{Kind: engine.KindUpdate}); err != nil {
		t.Fatalf("Result failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Affected records: 0") || !strings.Contains(buf.String(), "No records were updated") {
		t.Fatalf("unexpected output %q", buf.String())
	}

	buf.Reset()
	_ = Result(&buf, &engine.Result{Kind: engine.KindDelete, Affected: 2})
	if strings.Contains(buf.String(), "warning") {
		t.Fatalf("no warning expected when rows changed: %q", buf.String())
	}
}

func TestTokens(t *testing.T) {
	tokens, err := sql.Tokenize("select * from book")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	out := Tokens(tokens)
	for _, want := range []string{"Class", "select", "book", "keyword"} {
		if !strings.Contains(out, want) {
			t.Fatalf("token dump missing %q:\n%s", want, out)
		}
	}
}

func TestErrorPointsAtToken(t *testing.T) {
	stmt := "SELECT * FROM nope"
	err := dberr.At(dberr.TableNotExist, 3, "nope", 14, "table does not exist")

	out := Error(stmt, err)
	if !strings.Contains(out, "Error in the string: nope") {
		t.Fatalf("missing token hint:\n%s", out)
	}
	if !strings.Contains(out, strings.Repeat(" ", 14)+"^^^^") {
		t.Fatalf("caret not under the token:\n%s", out)
	}

	out = Error(stmt, dberr.New(dberr.FileOpenError, "read catalog"))
	if strings.Contains(out, "Error in the string") {
		t.Fatalf("storage errors have no token:\n%s", out)
	}
}
