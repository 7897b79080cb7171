package memstore

import (
	"fmt"
	"sort"
	"sync"

	"tabDB/internal/dberr"
	"tabDB/internal/sql"
	"tabDB/internal/storage"
)

// Store keeps encoded table images in memory, byte for byte what
// filestore would write to disk.
type Store struct {
	mu     sync.RWMutex
	images map[string][]byte
}

// New creates a new in-memory storage engine.
func New() *Store {
	return &Store{
		images: make(map[string][]byte),
	}
}

func (e *Store) CreateTable(t *sql.Table) error {
	return e.put(storage.NewTableFile(t))
}

func (e *Store) Load(t *sql.Table) (*storage.TableFile, error) {
	e.mu.RLock()
	data, ok := e.images[t.Name]
	e.mu.RUnlock()
	if !ok {
		return nil, dberr.Newf(dberr.FileOpenError, "table %s has no image", t.Name)
	}
	return storage.Decode(t, data)
}

func (e *Store) Append(tf *storage.TableFile, row sql.Row) error {
	next, err := tf.Appended(row)
	if err != nil {
		return err
	}
	if err := e.put(next); err != nil {
		return err
	}
	*tf = *next
	return nil
}

func (e *Store) Rewrite(tf *storage.TableFile, rows []sql.Row) error {
	next := tf.WithRows(rows)
	if err := e.put(next); err != nil {
		return err
	}
	*tf = *next
	return nil
}

func (e *Store) DropTable(t *sql.Table) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.images[t.Name]; !ok {
		return dberr.Newf(dberr.FileRemoveError, "table %s has no image", t.Name)
	}
	delete(e.images, t.Name)
	return nil
}

// ListTables returns the names of all stored images.
func (e *Store) ListTables() ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.images))
	for n := range e.images {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Image returns a copy of the stored bytes of a table.
func (e *Store) Image(name string) ([]byte, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	data, ok := e.images[name]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

func (e *Store) put(tf *storage.TableFile) error {
	data, err := tf.Encode()
	if err != nil {
		return fmt.Errorf("memstore: encode %s: %w", tf.Table.Name, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.images[tf.Table.Name] = data
	return nil
}
