// Package engine runs one statement at a time against a data directory:
// it loads the catalog, validates the statement, executes it through a
// storage.Engine and records successful mutations in the audit log.
package engine

import (
	"fmt"
	"io"

	"tabDB/internal/audit"
	"tabDB/internal/catalog"
	"tabDB/internal/logging"
	"tabDB/internal/storage"
	"tabDB/internal/storage/filestore"
)

// Config locates the files of one database.
type Config struct {
	// Dir holds the catalog, the table files, the audit log and any
	// LIST SCHEMA report files.
	Dir string

	CatalogFile string

	// AuditFile is the statement log inside Dir. Empty disables it.
	AuditFile string

	// CacheBytes bounds the decoded table image cache of the file store.
	// Zero disables the cache.
	CacheBytes int64
}

// DefaultConfig uses the current directory and the standard file names.
func DefaultConfig() Config {
	return Config{
		Dir:         ".",
		CatalogFile: catalog.DefaultFile,
		AuditFile:   audit.DefaultFile,
		CacheBytes:  8 << 20,
	}
}

// DBEngine executes statements. It keeps no catalog state between calls:
// every Execute reads the catalog file afresh.
type DBEngine struct {
	cfg   Config
	store storage.Engine
	audit *audit.Log
}

// New creates an engine that stores table rows in store.
func New(cfg Config, store storage.Engine) (*DBEngine, error) {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if cfg.CatalogFile == "" {
		cfg.CatalogFile = catalog.DefaultFile
	}

	e := &DBEngine{cfg: cfg, store: store}
	if cfg.AuditFile != "" {
		l, err := audit.Open(cfg.Dir, cfg.AuditFile)
		if err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
		e.audit = l
	}

	logging.WithComponent("engine").Debug("engine ready",
		"dir", cfg.Dir, "catalog", cfg.CatalogFile, "audit", cfg.AuditFile)
	return e, nil
}

// Open creates an engine over a file store in cfg.Dir.
func Open(cfg Config) (*DBEngine, error) {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	store, err := filestore.New(cfg.Dir, cfg.CacheBytes)
	if err != nil {
		return nil, err
	}
	e, err := New(cfg, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return e, nil
}

// Config returns the engine's configuration.
func (e *DBEngine) Config() Config { return e.cfg }

// Close releases the audit log and the store, if it holds resources.
func (e *DBEngine) Close() error {
	var first error
	if e.audit != nil {
		first = e.audit.Close()
	}
	if c, ok := e.store.(io.Closer); ok {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (e *DBEngine) loadCatalog() (*catalog.Catalog, error) {
	return catalog.Load(e.cfg.Dir, e.cfg.CatalogFile)
}
