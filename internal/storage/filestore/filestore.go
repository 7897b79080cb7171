package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tabDB/internal/dberr"
	"tabDB/internal/logging"
	"tabDB/internal/sql"
	"tabDB/internal/storage"
)

// Ext is the table file extension.
const Ext = ".tab"

// FileEngine stores one "<table>.tab" file per table in a directory.
// The file layout is described in package storage.
//
// Decoded images are kept in an optional cache that is validated against
// the file's size and modification time on every Load. That check misses
// same-size rewrites by another writer within one mtime tick, so a cached
// FileEngine must be the only writer of its directory.
type FileEngine struct {
	dir   string
	cache *imageCache
}

// New creates a FileEngine storing all tables in dir. cacheBytes bounds
// the image cache; zero disables it.
func New(dir string, cacheBytes int64) (*FileEngine, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create dir: %w", err)
	}

	e := &FileEngine{dir: dir}
	if cacheBytes > 0 {
		c, err := newImageCache(cacheBytes)
		if err != nil {
			return nil, fmt.Errorf("filestore: init cache: %w", err)
		}
		e.cache = c
	}
	return e, nil
}

// Close releases the image cache.
func (e *FileEngine) Close() error {
	if e.cache != nil {
		e.cache.close()
	}
	return nil
}

// TablePath maps a table name to its file: "<dir>/<name>.tab".
func (e *FileEngine) TablePath(name string) string {
	return filepath.Join(e.dir, name+Ext)
}

// ListTables returns the names of all table files in the directory.
func (e *FileEngine) ListTables() ([]string, error) {
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		return nil, fmt.Errorf("filestore: list tables: %w", err)
	}

	var tables []string
	for _, ent := range entries {
		if name := ent.Name(); !ent.IsDir() && strings.HasSuffix(name, Ext) {
			tables = append(tables, strings.TrimSuffix(name, Ext))
		}
	}
	sort.Strings(tables)
	return tables, nil
}

// CreateTable writes a header-only table file, replacing any stale file
// of the same name.
func (e *FileEngine) CreateTable(t *sql.Table) error {
	tf := storage.NewTableFile(t)
	if err := e.write(tf); err != nil {
		return err
	}
	logging.WithTable(t.Name).Debug("table file created",
		"path", e.TablePath(t.Name), "record_size", tf.Header.RecordSize)
	return nil
}

// Load reads and validates the table file of t.
func (e *FileEngine) Load(t *sql.Table) (*storage.TableFile, error) {
	path := e.TablePath(t.Name)

	info, err := os.Stat(path)
	if err != nil {
		return nil, dberr.Wrap(dberr.FileOpenError, err, "open table "+t.Name)
	}
	if e.cache != nil {
		if tf, ok := e.cache.get(path, info); ok && int(tf.Header.RecordSize) == storage.RecordSize(t.Columns) {
			tf.Table = t
			return tf, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dberr.Wrap(dberr.FileOpenError, err, "read table "+t.Name)
	}
	tf, err := storage.Decode(t, data)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.put(path, info, tf)
	}
	return tf, nil
}

// Append adds row to the table and rewrites its file.
func (e *FileEngine) Append(tf *storage.TableFile, row sql.Row) error {
	next, err := tf.Appended(row)
	if err != nil {
		return err
	}
	if err := e.write(next); err != nil {
		return err
	}
	*tf = *next
	return nil
}

// Rewrite replaces all rows of the table and rewrites its file.
func (e *FileEngine) Rewrite(tf *storage.TableFile, rows []sql.Row) error {
	next := tf.WithRows(rows)
	if err := e.write(next); err != nil {
		return err
	}
	logging.WithTable(tf.Table.Name).Debug("table file rewritten",
		"records_before", tf.Header.NumRecords, "records_after", next.Header.NumRecords)
	*tf = *next
	return nil
}

// DropTable removes the table file.
func (e *FileEngine) DropTable(t *sql.Table) error {
	path := e.TablePath(t.Name)
	if e.cache != nil {
		e.cache.del(path)
	}
	if err := os.Remove(path); err != nil {
		return dberr.Wrap(dberr.FileRemoveError, err, "remove "+filepath.Base(path))
	}
	return nil
}

func (e *FileEngine) write(tf *storage.TableFile) error {
	path := e.TablePath(tf.Table.Name)

	data, err := tf.Encode()
	if err != nil {
		return dberr.Wrap(dberr.TabFileCorruption, err, "encode "+tf.Table.Name)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		if e.cache != nil {
			e.cache.del(path)
		}
		return dberr.Wrap(dberr.FileOpenError, err, "write "+filepath.Base(path))
	}

	if e.cache != nil {
		info, err := os.Stat(path)
		if err != nil {
			e.cache.del(path)
			return nil
		}
		e.cache.put(path, info, tf)
	}
	return nil
}
