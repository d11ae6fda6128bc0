package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"financewise/engine/appcontext"
	"financewise/engine/finance/model"
)

var errInvalidStatement = errors.New("statement file is missing required columns")

// InvalidStatementError reports a statement whose header cannot be used.
func InvalidStatementError(filename string) error {
	return fmt.Errorf("%w: %s", errInvalidStatement, filename)
}

// ParseStatement reads a statement CSV and returns the transactions it
// holds. Rows with a missing date, an unparseable amount, or an unknown
// kind are skipped with a warning; they never abort the file.
func ParseStatement(ctx context.Context, filePath string) ([]model.Transaction, error) {
	logger := appcontext.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "Parsing statement", "filePath", filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read CSV header from file %s: %w", filePath, err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, required := range []string{"date", "type", "amount"} {
		if _, ok := colIndex[required]; !ok {
			return nil, InvalidStatementError(filePath)
		}
	}
	col := func(name string) int {
		if i, ok := colIndex[name]; ok {
			return i
		}
		return -1
	}

	var transactions []model.Transaction
	for {
		record, readErr := reader.Read()
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read record from CSV in file %s: %w", filePath, readErr)
		}

		dateStr := safeGet(record, col("date"))
		if dateStr == "" {
			logger.WarnContext(ctx, "Skipping record with empty date", "file", filePath)
			continue
		}
		parsedDate, parseErr := time.Parse("2006-01-02", dateStr)
		if parseErr != nil {
			logger.WarnContext(ctx, "Skipping record with invalid date format",
				"date", dateStr, "error", parseErr)
			continue
		}

		kind := strings.ToLower(safeGet(record, col("type")))
		if kind != model.Income && kind != model.Expense {
			logger.WarnContext(ctx, "Skipping record with unknown kind", "type", kind)
			continue
		}

		amountStr := safeGet(record, col("amount"))
		amount, convErr := strconv.ParseFloat(amountStr, 64)
		if convErr != nil || amount <= 0 {
			logger.WarnContext(ctx, "Skipping record with invalid amount",
				"amount", amountStr, "error", convErr)
			continue
		}

		tx := model.NewTransaction(
			kind,
			amount,
			safeGet(record, col("description")),
			safeGet(record, col("category")),
		)
		tx.Date = parsedDate.Format("2006-01-02")
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

func safeGet(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}
