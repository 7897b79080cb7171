// Command tabdb-check verifies a tabDB data directory without modifying
// it: the catalog must decode, every table file must match its
// descriptor, and stray table files are reported.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"tabDB/internal/audit"
	"tabDB/internal/catalog"
	"tabDB/internal/dberr"
	"tabDB/internal/logging"
	"tabDB/internal/sql"
	"tabDB/internal/storage"
	"tabDB/internal/storage/filestore"
)

// tableReport is the outcome of checking one table file.
type tableReport struct {
	Name    string
	Records int
	Bytes   int64
	Err     error
}

type report struct {
	CatalogBytes int64
	Tables       []tableReport
	Orphans      []string
	AuditEntries int
	LastMutation time.Time
}

func (r *report) failed() bool {
	if len(r.Orphans) > 0 {
		return true
	}
	for _, t := range r.Tables {
		if t.Err != nil {
			return true
		}
	}
	return false
}

func main() {
	dir := flag.String("dir", envOr("TABDB_DIR", "."), "data directory")
	catalogFile := flag.String("catalog", catalog.DefaultFile, "catalog file name")
	auditFile := flag.String("audit", audit.DefaultFile, "statement log file name")
	workers := flag.Int("workers", runtime.NumCPU(), "tables checked in parallel")
	flag.Parse()

	logging.InitDefault()

	rep, err := check(context.Background(), *dir, *catalogFile, *auditFile, *workers)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Printf("rc=%d\n", dberr.Status(err))
		os.Exit(1)
	}
	printReport(os.Stdout, rep)
	if rep.failed() {
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// check inspects dir. Problems with individual tables are recorded in
// the report; only an unreadable catalog is returned as an error.
func check(ctx context.Context, dir, catalogFile, auditFile string, workers int) (*report, error) {
	catPath := filepath.Join(dir, catalogFile)
	info, err := os.Stat(catPath)
	if err != nil {
		// catalog.Load would create a missing catalog; the checker never writes.
		return nil, dberr.Wrap(dberr.FileOpenError, err, "stat catalog")
	}
	cat, err := catalog.Load(dir, catalogFile)
	if err != nil {
		return nil, err
	}

	rep := &report{CatalogBytes: info.Size()}
	tables := cat.Tables()
	rep.Tables = make([]tableReport, len(tables))

	store, err := filestore.New(dir, 0)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, t := range tables {
		i, t := i, t
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rep.Tables[i] = checkTable(store, t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep.Orphans, err = orphans(store, cat)
	if err != nil {
		return nil, err
	}

	entries, err := audit.ReadEntries(filepath.Join(dir, auditFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		logging.Warn("audit log unreadable", "error", err)
	default:
		rep.AuditEntries = len(entries)
		if len(entries) > 0 {
			rep.LastMutation = entries[len(entries)-1].Time
		}
	}
	return rep, nil
}

func checkTable(store *filestore.FileEngine, t *sql.Table) tableReport {
	r := tableReport{Name: t.Name}
	if info, err := os.Stat(store.TablePath(t.Name)); err == nil {
		r.Bytes = info.Size()
	}
	tf, err := store.Load(t)
	if err != nil {
		r.Err = err
		return r
	}
	r.Records = int(tf.Header.NumRecords)
	return r
}

// orphans lists table files without a catalog entry.
func orphans(lister storage.Lister, cat *catalog.Catalog) ([]string, error) {
	names, err := lister.ListTables()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, n := range names {
		if _, ok := cat.Lookup(n); !ok {
			out = append(out, n+filestore.Ext)
		}
	}
	return out, nil
}

func printReport(w io.Writer, rep *report) {
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	badStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("table", "records", "size", "status").
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row != table.HeaderRow && (col == 1 || col == 2) {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
	for _, tr := range rep.Tables {
		status := okStyle.Render("ok")
		if tr.Err != nil {
			status = badStyle.Render(tr.Err.Error())
		}
		t.Row(tr.Name, strconv.Itoa(tr.Records), humanize.Bytes(uint64(tr.Bytes)), status)
	}

	fmt.Fprintf(w, "catalog: %d tables, %s\n", len(rep.Tables), humanize.Bytes(uint64(rep.CatalogBytes)))
	if len(rep.Tables) > 0 {
		fmt.Fprintln(w, t.String())
	}
	if len(rep.Orphans) > 0 {
		fmt.Fprintln(w, badStyle.Render("table files without catalog entry: "+strings.Join(rep.Orphans, ", ")))
	}
	if rep.AuditEntries > 0 {
		fmt.Fprintf(w, "audit log: %d statements, last %s\n", rep.AuditEntries, humanize.Time(rep.LastMutation))
	}
}
