// Package catalog persists the list of table descriptors in a single
// binary file. A Catalog is loaded at the start of a statement, consulted
// and possibly modified by it, and dropped when the statement ends.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tabDB/internal/dberr"
	"tabDB/internal/logging"
	"tabDB/internal/sql"
)

// DefaultFile is the catalog file name inside the data directory.
const DefaultFile = "dbfile.bin"

// Catalog is the in-memory image of the catalog file.
type Catalog struct {
	path   string
	flags  int32
	tables []*sql.Table
}

// Load reads the catalog file at dir/name, creating an empty one if it
// does not exist yet.
func Load(dir, name string) (*Catalog, error) {
	path := filepath.Join(dir, name)
	c := &Catalog{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logging.WithComponent("catalog").Info("creating empty catalog", "path", path)
		if err := c.save(); err != nil {
			return nil, err
		}
		return c, nil
	}
	if err != nil {
		return nil, dberr.Wrap(dberr.FileOpenError, err, "read catalog")
	}

	flags, tables, err := decode(data)
	if err != nil {
		return nil, dberr.Wrap(dberr.DBFileCorruption, err, path)
	}
	c.flags = flags
	c.tables = tables
	return c, nil
}

// Path is the location of the catalog file.
func (c *Catalog) Path() string { return c.path }

// Len is the number of tables.
func (c *Catalog) Len() int { return len(c.tables) }

// Size is the catalog's total size field, equal to the file length.
func (c *Catalog) Size() int { return fileSize(c.tables) }

// Tables returns the tables in creation order.
func (c *Catalog) Tables() []*sql.Table {
	out := make([]*sql.Table, len(c.tables))
	copy(out, c.tables)
	return out
}

// Lookup finds a table by name, ignoring case.
func (c *Catalog) Lookup(name string) (*sql.Table, bool) {
	i := c.index(name)
	if i < 0 {
		return nil, false
	}
	return c.tables[i], true
}

func (c *Catalog) index(name string) int {
	for i, t := range c.tables {
		if strings.EqualFold(t.Name, name) {
			return i
		}
	}
	return -1
}

// Insert appends a table and rewrites the catalog file.
func (c *Catalog) Insert(t *sql.Table) error {
	if c.index(t.Name) >= 0 {
		return dberr.Newf(dberr.DuplicateTableName, "table %s already exists", t.Name)
	}
	if len(t.Columns) == 0 || len(t.Columns) > sql.MaxColumns {
		return dberr.Newf(dberr.InvalidTableDefinition, "table %s has %d columns", t.Name, len(t.Columns))
	}
	if len(t.Name) > sql.MaxIdentLen {
		return dberr.Newf(dberr.InvalidTableName, "table name %q too long", t.Name)
	}

	c.tables = append(c.tables, t)
	if err := c.save(); err != nil {
		c.tables = c.tables[:len(c.tables)-1]
		return err
	}
	logging.WithTable(t.Name).Debug("catalog entry added", "columns", len(t.Columns), "catalog_size", c.Size())
	return nil
}

// Remove deletes a table, ignoring case, and rewrites the catalog file.
// It returns the removed descriptor.
func (c *Catalog) Remove(name string) (*sql.Table, error) {
	i := c.index(name)
	if i < 0 {
		return nil, dberr.Newf(dberr.TableNotExist, "table %s does not exist", name)
	}

	removed := c.tables[i]
	before := c.tables
	c.tables = append(append([]*sql.Table{}, c.tables[:i]...), c.tables[i+1:]...)
	if err := c.save(); err != nil {
		c.tables = before
		return nil, err
	}
	logging.WithTable(removed.Name).Debug("catalog entry removed", "catalog_size", c.Size())
	return removed, nil
}

func (c *Catalog) save() error {
	if err := os.WriteFile(c.path, encode(c.flags, c.tables), 0o644); err != nil {
		return dberr.Wrap(dberr.FileOpenError, err, fmt.Sprintf("write catalog %s", c.path))
	}
	return nil
}
