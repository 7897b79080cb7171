package engine

import (
	"context"
	"fmt"
	"time"

	"tabDB/internal/catalog"
	"tabDB/internal/logging"
	"tabDB/internal/sql"
)

// Execute runs a single statement. The returned Result is non-nil even
// on failure once the statement has been tokenized, so callers can still
// show the tokens. Errors are *dberr.Error values; dberr.Status gives the
// numeric return code.
func (e *DBEngine) Execute(ctx context.Context, statement string) (*Result, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cat, err := e.loadCatalog()
	if err != nil {
		return nil, err
	}

	tokens, err := sql.Tokenize(statement)
	res := &Result{Tokens: tokens}
	if err != nil {
		return res, err
	}

	stmt, err := sql.Analyze(tokens, cat)
	if err != nil {
		logging.WithStatement("", statement).Debug("statement rejected", "error", err)
		return res, err
	}
	res.Kind = kindOf(stmt)
	log := logging.WithStatement(res.Kind.String(), statement)

	if err := ctx.Err(); err != nil {
		return res, err
	}

	switch s := stmt.(type) {
	case *sql.CreateTableStmt:
		err = e.execCreateTable(cat, s, res)
	case *sql.DropTableStmt:
		err = e.execDropTable(cat, s, res)
	case *sql.ListTablesStmt:
		err = e.execListTables(cat, res)
	case *sql.ListSchemaStmt:
		err = e.execListSchema(s, res)
	case *sql.InsertStmt:
		err = e.execInsert(s, res)
	case *sql.SelectStmt:
		err = e.execSelect(s, res)
	case *sql.UpdateStmt:
		err = e.execUpdate(s, res)
	case *sql.DeleteStmt:
		err = e.execDelete(s, res)
	default:
		err = fmt.Errorf("unsupported statement type %T", stmt)
	}
	if err != nil {
		log.Warn("statement failed", "error", err)
		return res, err
	}

	if res.Kind.Mutates() && e.audit != nil {
		if aerr := e.audit.Record(statement); aerr != nil {
			log.Warn("audit log write failed", "error", aerr)
		}
	}
	log.Debug("statement executed", "affected", res.Affected, "duration", time.Since(start))
	return res, nil
}

// Lookup resolves a table by name, ignoring case.
func (e *DBEngine) Lookup(name string) (*sql.Table, bool, error) {
	cat, err := e.loadCatalog()
	if err != nil {
		return nil, false, err
	}
	t, ok := cat.Lookup(name)
	return t, ok, nil
}

var _ sql.Catalog = (*catalog.Catalog)(nil)
