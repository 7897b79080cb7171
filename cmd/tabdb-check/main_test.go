package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tabDB/internal/audit"
	"tabDB/internal/catalog"
	"tabDB/internal/dberr"
	"tabDB/internal/engine"
)

func seed(t *testing.T, dir string, stmts ...string) {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.Dir = dir
	eng, err := engine.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer eng.Close()
	for _, s := range stmts {
		if _, err := eng.Execute(context.Background(), s); err != nil {
			t.Fatalf("Execute(%q) failed: %v", s, err)
		}
	}
}

func TestCheckHealthyDirectory(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir,
		"CREATE TABLE a(x int)",
		"CREATE TABLE b(y char(8))",
		"INSERT INTO a VALUES(1)",
		"INSERT INTO a VALUES(2)",
	)

	rep, err := check(context.Background(), dir, catalog.DefaultFile, audit.DefaultFile, 2)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if rep.failed() {
		t.Fatalf("healthy directory reported as failed: %+v", rep)
	}
	if len(rep.Tables) != 2 || rep.Tables[0].Records != 2 || rep.Tables[1].Records != 0 {
		t.Fatalf("unexpected table reports %+v", rep.Tables)
	}
	if rep.AuditEntries != 4 {
		t.Fatalf("expected 4 audit entries, got %d", rep.AuditEntries)
	}

	var buf bytes.Buffer
	printReport(&buf, rep)
	if !strings.Contains(buf.String(), "catalog: 2 tables") {
		t.Fatalf("unexpected report:\n%s", buf.String())
	}
}

func TestCheckFindsProblems(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir, "CREATE TABLE a(x int)", "INSERT INTO a VALUES(1)")

	path := filepath.Join(dir, "a.tab")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if err := os.WriteFile(path, data[:len(data)-2], 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stray.tab"), nil, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	rep, err := check(context.Background(), dir, catalog.DefaultFile, audit.DefaultFile, 1)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if dberr.CodeOf(rep.Tables[0].Err) != dberr.TabFileCorruption {
		t.Fatalf("expected TabFileCorruption, got %v", rep.Tables[0].Err)
	}
	if len(rep.Orphans) != 1 || rep.Orphans[0] != "stray.tab" {
		t.Fatalf("unexpected orphans %v", rep.Orphans)
	}
	if !rep.failed() {
		t.Fatalf("expected failed report")
	}
}

func TestCheckMissingCatalog(t *testing.T) {
	dir := t.TempDir()
	_, err := check(context.Background(), dir, catalog.DefaultFile, audit.DefaultFile, 1)
	if dberr.CodeOf(err) != dberr.FileOpenError {
		t.Fatalf("expected FileOpenError, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, catalog.DefaultFile)); !os.IsNotExist(err) {
		t.Fatalf("checker must not create the catalog")
	}
}
