package catalog

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tabDB/internal/dberr"
	"tabDB/internal/sql"
)

func bookTable() *sql.Table {
	return &sql.Table{
		Name: "BOOK",
		Columns: []sql.Column{
			{ID: 0, Name: "title", Type: sql.TypeString, Length: 50, NotNull: true},
			{ID: 1, Name: "author", Type: sql.TypeString, Length: 30},
			{ID: 2, Name: "copies", Type: sql.TypeInt, Length: 4},
		},
	}
}

func fileLen(t *testing.T, path string) int {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	return int(info.Size())
}

func TestLoadCreatesEmptyCatalog(t *testing.T) {
	dir := t.TempDir()

	c, err := Load(dir, DefaultFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty catalog, got %d tables", c.Len())
	}
	if got := fileLen(t, c.Path()); got != 48 {
		t.Fatalf("expected 48-byte placeholder file, got %d", got)
	}

	data, _ := os.ReadFile(c.Path())
	if size := binary.LittleEndian.Uint32(data[0:4]); size != 48 {
		t.Fatalf("expected size field 48, got %d", size)
	}
}

func TestInsertLookupReload(t *testing.T) {
	dir := t.TempDir()
	c, err := Load(dir, DefaultFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := c.Insert(bookTable()); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	// First table occupies the placeholder: 12 + 36 + 3*36.
	if got := fileLen(t, c.Path()); got != 156 || c.Size() != 156 {
		t.Fatalf("expected 156 bytes, file=%d size=%d", got, c.Size())
	}

	if err := c.Insert(&sql.Table{Name: "t2", Columns: []sql.Column{{Name: "a", Type: sql.TypeInt, Length: 4}}}); err != nil {
		t.Fatalf("Insert t2 failed: %v", err)
	}
	if got := fileLen(t, c.Path()); got != 156+72 {
		t.Fatalf("expected %d bytes, got %d", 156+72, got)
	}

	reloaded, err := Load(dir, DefaultFile)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Len() != 2 {
		t.Fatalf("expected 2 tables, got %d", reloaded.Len())
	}

	got, ok := reloaded.Lookup("book")
	if !ok {
		t.Fatalf("Lookup should be case-insensitive")
	}
	want := bookTable()
	if got.Name != want.Name || len(got.Columns) != len(want.Columns) {
		t.Fatalf("unexpected table %+v", got)
	}
	for i := range want.Columns {
		if got.Columns[i] != want.Columns[i] {
			t.Fatalf("column %d: expected %+v, got %+v", i, want.Columns[i], got.Columns[i])
		}
	}
}

func TestInsertDuplicateAnyCase(t *testing.T) {
	c, err := Load(t.TempDir(), DefaultFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := c.Insert(bookTable()); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	before := fileLen(t, c.Path())

	dup := bookTable()
	dup.Name = "book"
	err = c.Insert(dup)
	if dberr.CodeOf(err) != dberr.DuplicateTableName {
		t.Fatalf("expected DuplicateTableName, got %v", err)
	}
	if c.Len() != 1 || fileLen(t, c.Path()) != before {
		t.Fatalf("catalog changed after failed insert")
	}
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	c, _ := Load(dir, DefaultFile)
	a := &sql.Table{Name: "a", Columns: []sql.Column{{Name: "x", Type: sql.TypeInt, Length: 4}}}
	b := &sql.Table{Name: "b", Columns: []sql.Column{{Name: "y", Type: sql.TypeString, Length: 8}}}
	if err := c.Insert(a); err != nil {
		t.Fatalf("Insert a failed: %v", err)
	}
	if err := c.Insert(b); err != nil {
		t.Fatalf("Insert b failed: %v", err)
	}

	if _, err := c.Remove("nope"); dberr.CodeOf(err) != dberr.TableNotExist {
		t.Fatalf("expected TableNotExist, got %v", err)
	}

	removed, err := c.Remove("A")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if removed.Name != "a" {
		t.Fatalf("removed wrong table %q", removed.Name)
	}

	reloaded, err := Load(dir, DefaultFile)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if _, ok := reloaded.Lookup("a"); ok {
		t.Fatalf("a should be gone")
	}
	if _, ok := reloaded.Lookup("b"); !ok {
		t.Fatalf("b should remain")
	}

	if _, err := reloaded.Remove("b"); err != nil {
		t.Fatalf("Remove b failed: %v", err)
	}
	if got := fileLen(t, reloaded.Path()); got != 48 {
		t.Fatalf("expected placeholder state after last remove, got %d bytes", got)
	}
}

func TestLoadCorruption(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"truncated", func(b []byte) []byte { return b[:len(b)-4] }},
		{"appended", func(b []byte) []byte { return append(b, 0, 0, 0, 0) }},
		{"too short", func(b []byte) []byte { return b[:8] }},
		{"bad column type", func(b []byte) []byte {
			// type field of the first column: header + table block + name + id
			binary.LittleEndian.PutUint32(b[12+36+24:], 42)
			return b
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			c, _ := Load(dir, DefaultFile)
			if err := c.Insert(bookTable()); err != nil {
				t.Fatalf("Insert failed: %v", err)
			}
			data, _ := os.ReadFile(c.Path())
			if err := os.WriteFile(filepath.Join(dir, DefaultFile), tt.mutate(data), 0o644); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}

			_, err := Load(dir, DefaultFile)
			if !errors.Is(err, dberr.New(dberr.DBFileCorruption, "")) {
				t.Fatalf("expected DBFileCorruption, got %v", err)
			}
		})
	}
}
