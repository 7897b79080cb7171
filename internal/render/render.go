// Package render prints statement results for a terminal.
package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"tabDB/internal/dberr"
	"tabDB/internal/engine"
	"tabDB/internal/sql"
)

// NullText is how NULL cells are shown.
const NullText = "-"

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	numberStyle  = cellStyle.Align(lipgloss.Right)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
}

// Result writes res in the form matching its statement kind.
func Result(w io.Writer, res *engine.Result) error {
	var out string
	switch res.Kind {
	case engine.KindSelect:
		if res.Aggregate != nil {
			out = Aggregate(res.Aggregate)
		} else {
			out = Rows(res.Columns, res.Rows)
		}
	case engine.KindListTables:
		out = Tables(res.Tables)
	case engine.KindListSchema:
		out = res.Schema
	case engine.KindInsert, engine.KindUpdate, engine.KindDelete:
		out = affected(res)
	case engine.KindCreateTable:
		out = "Table " + res.Table + " created.\n"
	case engine.KindDropTable:
		out = "Table " + res.Table + " dropped.\n"
	}
	_, err := io.WriteString(w, out)
	return err
}

// Rows renders a projected row set. INT columns are right aligned.
func Rows(cols []sql.Column, rows []sql.Row) string {
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Name
	}

	data := make([][]string, len(rows))
	for i, r := range rows {
		cells := make([]string, len(r))
		for j, v := range r {
			cells[j] = Cell(v)
		}
		data[i] = cells
	}

	t := newTable(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if cols[col].Type == sql.TypeInt {
				return numberStyle
			}
			return cellStyle
		})
	return t.String() + "\n" + fmt.Sprintf("%d rows selected.\n", len(rows))
}

// Cell formats one value.
func Cell(v sql.Value) string {
	if v.Null {
		return NullText
	}
	return v.String()
}

// Aggregate renders an aggregate as a one-cell table titled by the
// function, e.g. AVG(copies).
func Aggregate(a *engine.AggregateResult) string {
	value := "NaN"
	if !a.NaN {
		value = strconv.FormatInt(a.Value, 10)
	}
	t := newTable(a.Title).
		Row(value).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return numberStyle
		})
	return t.String() + "\n"
}

// Tables renders the LIST TABLE output.
func Tables(names []string) string {
	if len(names) == 0 {
		return "There are currently no tables defined\n"
	}
	var b strings.Builder
	b.WriteString("Table List\n")
	b.WriteString("----------\n")
	for _, n := range names {
		b.WriteString(n + "\n")
	}
	b.WriteString("****** End ******\n")
	return b.String()
}

// Tokens renders the token dump shown in debug mode.
func Tokens(tokens []sql.Token) string {
	t := newTable("#", "Class", "Value", "Text").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 || col == 2 {
				return numberStyle
			}
			return cellStyle
		})
	for _, tok := range tokens {
		t.Row(strconv.Itoa(tok.Index), tok.Class.String(), strconv.Itoa(int(tok.Kind)), tok.Text)
	}
	return t.String() + "\n"
}

func affected(res *engine.Result) string {
	s := fmt.Sprintf("Affected records: %d\n", res.Affected)
	if res.Affected > 0 {
		return s
	}
	switch res.Kind {
	case engine.KindUpdate:
		s += warningStyle.Render("[warning] No records were updated.") + "\n"
	case engine.KindDelete:
		s += warningStyle.Render("[warning] No records were deleted.") + "\n"
	}
	return s
}

// Error describes a failed statement. When err points at a token, the
// offending text is named and marked under the statement.
func Error(statement string, err error) string {
	var b strings.Builder
	var de *dberr.Error
	if errors.As(err, &de) && de.Token != dberr.NoToken {
		fmt.Fprintf(&b, "Error in the string: %s\n", errorStyle.Render(de.Lexeme))
		if de.Offset >= 0 && de.Offset <= len(statement) {
			b.WriteString(statement + "\n")
			width := len(de.Lexeme)
			if width == 0 {
				width = 1
			}
			b.WriteString(strings.Repeat(" ", de.Offset) + errorStyle.Render(strings.Repeat("^", width)) + "\n")
		}
	}
	fmt.Fprintf(&b, "%s\n", err)
	return b.String()
}
