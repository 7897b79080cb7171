// Command tabdb executes SQL statements against a tabDB data directory.
//
//	tabdb [flags] "SELECT * FROM BOOK"
//	tabdb [flags] -f script.sql
//
// Every statement runs on its own: the catalog is reloaded each time and
// a failure ends the run with "rc=<code>".
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"tabDB/internal/dberr"
	"tabDB/internal/engine"
	"tabDB/internal/logging"
	"tabDB/internal/render"
)

// Configuration is the command line.
type Configuration struct {
	Engine     engine.Config
	LogLevel   string
	LogFile    string
	LogFormat  string
	ShowTokens bool
	ScriptFile string
	Statement  string
}

func main() {
	config, err := parseArguments(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := initLogging(config); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logging.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rc := run(ctx, config)
	if rc != 0 {
		logging.Close()
		os.Exit(1)
	}
}

// parseArguments processes command-line flags. The data directory falls
// back to $TABDB_DIR, then to the current directory.
func parseArguments(args []string) (Configuration, error) {
	config := Configuration{Engine: engine.DefaultConfig()}
	if dir := os.Getenv("TABDB_DIR"); dir != "" {
		config.Engine.Dir = dir
	}
	var cacheMB int64

	fs := flag.NewFlagSet("tabdb", flag.ContinueOnError)
	fs.StringVar(&config.Engine.Dir, "dir", config.Engine.Dir, "data directory")
	fs.StringVar(&config.Engine.CatalogFile, "catalog", config.Engine.CatalogFile, "catalog file name inside the data directory")
	fs.StringVar(&config.Engine.AuditFile, "audit", config.Engine.AuditFile, "statement log file name (empty disables it)")
	fs.Int64Var(&cacheMB, "cache-mb", config.Engine.CacheBytes>>20, "table image cache size in MiB (0 disables it)")
	fs.StringVar(&config.LogLevel, "log-level", "warn", "log level: debug, info, warn, error")
	fs.StringVar(&config.LogFile, "log-file", "", "log file (default stderr)")
	fs.StringVar(&config.LogFormat, "log-format", "text", "log format: text or json")
	fs.BoolVar(&config.ShowTokens, "tokens", false, "print the token list of each statement")
	fs.StringVar(&config.ScriptFile, "f", "", "execute the statements of a file, one per line")

	if err := fs.Parse(args); err != nil {
		return config, err
	}
	config.Engine.CacheBytes = cacheMB << 20

	switch {
	case config.ScriptFile != "" && fs.NArg() > 0:
		return config, fmt.Errorf("tabdb: give either a statement or -f, not both")
	case config.ScriptFile == "" && fs.NArg() != 1:
		return config, fmt.Errorf("usage: tabdb [flags] \"statement\" | tabdb [flags] -f file")
	case fs.NArg() == 1:
		config.Statement = fs.Arg(0)
	}
	return config, nil
}

func initLogging(config Configuration) error {
	level, err := logging.ParseLevel(config.LogLevel)
	if err != nil {
		return err
	}
	return logging.Init(logging.Config{
		Level:      level,
		OutputPath: config.LogFile,
		Format:     config.LogFormat,
	})
}

func run(ctx context.Context, config Configuration) int {
	eng, err := engine.Open(config.Engine)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Printf("rc=%d\n", dberr.Status(err))
		return dberr.Status(err)
	}
	defer eng.Close()
	logging.Debug("engine opened", "dir", config.Engine.Dir, "cache_bytes", config.Engine.CacheBytes)

	statements := []string{config.Statement}
	if config.ScriptFile != "" {
		statements, err = readScript(config.ScriptFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return int(dberr.FileOpenError)
		}
		logging.Info("running script", "file", config.ScriptFile, "statements", len(statements))
	}

	for i, stmt := range statements {
		if rc := execute(ctx, eng, config, stmt); rc != 0 {
			if config.ScriptFile != "" {
				logging.Info("script stopped", "statement", i+1, "rc", rc)
			}
			return rc
		}
	}
	return 0
}

func execute(ctx context.Context, eng *engine.DBEngine, config Configuration, stmt string) int {
	if config.ScriptFile != "" {
		fmt.Println(">> " + stmt)
	}

	res, err := eng.Execute(ctx, stmt)
	if config.ShowTokens && res != nil {
		fmt.Print(render.Tokens(res.Tokens))
	}
	if err != nil {
		fmt.Print(render.Error(stmt, err))
		rc := dberr.Status(err)
		fmt.Printf("rc=%d\n", rc)
		return rc
	}

	if err := render.Result(os.Stdout, res); err != nil {
		logging.Error("write result", "error", err)
	}
	return 0
}

// readScript returns the non-empty lines of a script file. Lines starting
// with "--" are comments.
func readScript(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tabdb: open script: %w", err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("tabdb: read script: %w", err)
	}
	return out, nil
}
