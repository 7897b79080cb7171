// Package audit appends every successful mutating statement to a plain
// text log, one line per statement:
//
//	20240131235959 "INSERT INTO BOOK VALUES('ML', 'PH', 1337)"
//
// The timestamp is local time.
package audit

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultFile is the audit log name inside the data directory.
const DefaultFile = "db.log"

// TimeLayout is the 14-digit timestamp prefix of every line.
const TimeLayout = "20060102150405"

// Log is an append-only statement log.
type Log struct {
	mu   sync.Mutex
	f    *os.File
	path string
	now  func() time.Time
}

// Open opens or creates the log at dir/name in append mode.
func Open(dir, name string) (*Log, error) {
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("audit: open: %w", err)
	}
	return &Log{f: f, path: path, now: time.Now}, nil
}

// Path is the location of the log file.
func (l *Log) Path() string { return l.path }

// Record appends one statement and flushes it to disk.
func (l *Log) Record(statement string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return fmt.Errorf("audit: closed")
	}

	line := l.now().Format(TimeLayout) + " \"" + statement + "\"\n"
	if _, err := l.f.WriteString(line); err != nil {
		return fmt.Errorf("audit: write: %w", err)
	}
	if err := l.f.Sync(); err != nil {
		return fmt.Errorf("audit: sync: %w", err)
	}
	return nil
}

// Close closes the log file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

// Entry is one parsed log line.
type Entry struct {
	Time      time.Time
	Statement string
}

// ReadEntries parses a log file. Statements are stored verbatim between
// the outer quotes, so a statement never spans lines. Lines that do not
// follow the log format are returned as an error naming the line number.
func ReadEntries(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audit: open: %w", err)
	}
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		ts, quoted, ok := strings.Cut(line, " ")
		if !ok || len(ts) != len(TimeLayout) {
			return nil, fmt.Errorf("audit: line %d: missing timestamp", n)
		}
		when, err := time.ParseInLocation(TimeLayout, ts, time.Local)
		if err != nil {
			return nil, fmt.Errorf("audit: line %d: %w", n, err)
		}
		if len(quoted) < 2 || quoted[0] != '"' || quoted[len(quoted)-1] != '"' {
			return nil, fmt.Errorf("audit: line %d: statement not quoted", n)
		}
		entries = append(entries, Entry{Time: when, Statement: quoted[1 : len(quoted)-1]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("audit: read: %w", err)
	}
	return entries, nil
}
