// Package importer loads CSV bank statements into the live session by
// dispatching one AddTransaction per parsed row.
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"financewise/engine/appcontext"
	"financewise/engine/finance"
	"financewise/engine/session"
)

// ImportCSVFiles processes every statement CSV in a directory and
// dispatches its transactions through the session. A file that fails to
// parse is recorded and skipped; it does not abort the run.
func ImportCSVFiles(ctx context.Context, sess *session.Session, dir string) (*Stats, error) {
	logger := appcontext.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "Reading statements", "dir", dir)

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	stats := NewStats()

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		stats.TotalFiles++

		if !validateFile(file) {
			reason := "Not a valid CSV file"
			stats.AddFailure(file.Name(), reason)
			logger.WarnContext(ctx, "file was not processed", "fileName", file.Name(), "reason", reason)
			continue
		}

		rows, err := processFile(ctx, sess, dir, file.Name())
		if err != nil {
			stats.AddFailure(file.Name(), err.Error())
			logger.ErrorContext(ctx, "failed to process file", "file", file.Name(), "error", err)
			continue
		}
		stats.AddProcessed(rows)
	}

	return stats, nil
}

// Return true only if the entry pointed to by FILE is valid.
func validateFile(file os.DirEntry) bool {
	return strings.EqualFold(filepath.Ext(file.Name()), ".csv")
}

func processFile(ctx context.Context, sess *session.Session, dir, name string) (int, error) {
	cleanFileName := filepath.Clean(name)
	if strings.HasPrefix(cleanFileName, "..") {
		return 0, InvalidStatementError(name)
	}

	transactions, err := ParseStatement(ctx, filepath.Join(dir, cleanFileName))
	if err != nil {
		return 0, err
	}

	for _, tx := range transactions {
		sess.Dispatch(ctx, finance.AddTransaction{Transaction: tx})
	}

	return len(transactions), nil
}
