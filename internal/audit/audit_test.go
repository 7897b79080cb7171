package audit

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestRecordFormat(t *testing.T) {
	dir := t.TempDir()
	l, err := Open(dir, DefaultFile)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	l.now = func() time.Time { return time.Date(2024, 1, 31, 23, 59, 58, 0, time.Local) }

	stmts := []string{
		"CREATE TABLE BOOK(title char(50) NOT NULL)",
		"INSERT INTO BOOK VALUES('ML')",
	}
	for _, s := range stmts {
		if err := l.Record(s); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := l.Record("x"); err == nil {
		t.Fatalf("expected Record after Close to fail")
	}

	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	want := `20240131235958 "INSERT INTO BOOK VALUES('ML')"`
	if len(lines) != 2 || lines[1] != want {
		t.Fatalf("unexpected log contents:\n%s", data)
	}

	entries, err := ReadEntries(l.Path())
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Statement != stmts[0] || entries[1].Time.Second() != 58 {
		t.Fatalf("unexpected entries %+v", entries)
	}
}

func TestOpenAppends(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 2; i++ {
		l, err := Open(dir, DefaultFile)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		if err := l.Record("DROP TABLE t"); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		_ = l.Close()
	}

	entries, err := ReadEntries(dir + "/" + DefaultFile)
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestReadEntriesRejectsMalformed(t *testing.T) {
	path := t.TempDir() + "/bad.log"
	if err := os.WriteFile(path, []byte("not a log line\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := ReadEntries(path); err == nil {
		t.Fatalf("expected error for malformed line")
	}
}

func TestRecordKeepsStatementVerbatim(t *testing.T) {
	dir := t.TempDir()
	l, err := Open(dir, DefaultFile)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	l.now = func() time.Time { return time.Date(2024, 5, 1, 8, 0, 0, 0, time.Local) }

	stmt := `INSERT INTO q VALUES('say "hi" \o/')`
	if err := l.Record(stmt); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	_ = l.Close()

	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	want := "20240501080000 \"" + stmt + "\"\n"
	if string(data) != want {
		t.Fatalf("expected %q, got %q", want, data)
	}

	entries, err := ReadEntries(l.Path())
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Statement != stmt {
		t.Fatalf("unexpected entries %+v", entries)
	}
}
