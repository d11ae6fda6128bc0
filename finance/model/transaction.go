package model

import (
	"time"

	"github.com/google/uuid"
)

// Transaction kinds.
const (
	Income  = "income"
	Expense = "expense"
)

// Transaction is a single income or expense entry.
type Transaction struct {
	ID          string  `bson:"id"          json:"id"`
	Type        string  `bson:"type"        json:"type"`
	Amount      float64 `bson:"amount"      json:"amount"`
	Description string  `bson:"description" json:"description"`
	Category    string  `bson:"category"    json:"category"`
	Date        string  `bson:"date"        json:"date"`
}

// NewTransaction creates a transaction dated today with a generated id.
func NewTransaction(kind string, amount float64, description, category string) Transaction {
	return Transaction{
		ID:          uuid.NewString(),
		Type:        kind,
		Amount:      amount,
		Description: description,
		Category:    category,
		Date:        time.Now().Format("2006-01-02"),
	}
}
