package logging

import "log/slog"

// WithTable returns a logger tagged with a table name. Use it for catalog
// and table file operations.
func WithTable(table string) *slog.Logger {
	return GetLogger().With("table", table)
}

// WithComponent returns a logger tagged with a subsystem name.
func WithComponent(component string) *slog.Logger {
	return GetLogger().With("component", component)
}

// WithStatement returns a logger tagged with the statement being executed.
func WithStatement(kind, text string) *slog.Logger {
	return GetLogger().With("stmt", kind, "text", text)
}
