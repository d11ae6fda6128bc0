// Package synthetic generates random statement CSVs for demos and tests.
package synthetic

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

var categories = []string{"Groceries", "Transport", "Entertainment", "Utilities", "Dining"}

// GenerateStatement creates a CSV statement file with synthetic
// transactions in the importer's format and returns its path.
func GenerateStatement(rows int, dir string) (string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", fmt.Errorf("failed to create directory '%s': %w", dir, err)
		}
	}

	filePath := filepath.Join(dir, "synthetic-statement.csv")
	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file '%s': %w", filePath, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Date", "Type", "Amount", "Description", "Category"}
	if err := writer.Write(header); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	for i := 0; i < rows; i++ {
		kind := "expense"
		category := categories[rand.Intn(len(categories))]
		amount := 5 + rand.Float64()*200
		if i%10 == 0 {
			kind = "income"
			category = "Salary"
			amount = 500 + rand.Float64()*2500
		}
		row := []string{
			time.Now().AddDate(0, 0, -rand.Intn(30)).Format("2006-01-02"),
			kind,
			fmt.Sprintf("%.2f", amount),
			fmt.Sprintf("Synthetic transaction %d", i),
			category,
		}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}

	return filePath, nil
}
