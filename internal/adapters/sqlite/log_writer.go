package sqlite

import (
	"context"
	"fmt"
)

// LogWriter implements secondary.LogWriter against the activity_log table.
type LogWriter struct {
	q dbtx
}

// NewLogWriter creates a SQLite activity log writer.
func NewLogWriter(q dbtx) *LogWriter {
	return &LogWriter{q: q}
}

// Warn records a warning event. Callers treat failures as non-fatal.
func (w *LogWriter) Warn(ctx context.Context, cellarID, event, detail string) error {
	_, err := w.q.ExecContext(ctx,
		"INSERT INTO activity_log (cellar_id, event, detail) VALUES (?, ?, ?)",
		nullString(cellarID), event, detail,
	)
	if err != nil {
		return fmt.Errorf("failed to write activity log: %w", err)
	}
	return nil
}
