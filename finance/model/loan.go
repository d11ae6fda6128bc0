package model

import "github.com/google/uuid"

// Loan statuses.
const (
	LoanActive  = "active"
	LoanPaid    = "paid"
	LoanOverdue = "overdue"
)

// Loan is an outstanding debt. CurrentBalance never goes negative;
// payments clamp it at zero.
type Loan struct {
	ID              string  `bson:"id"              json:"id"`
	Type            string  `bson:"type"            json:"type"`
	Bank            string  `bson:"bank"            json:"bank"`
	OriginalAmount  float64 `bson:"originalAmount"  json:"originalAmount"`
	CurrentBalance  float64 `bson:"currentBalance"  json:"currentBalance"`
	MonthlyEmi      float64 `bson:"monthlyEmi"      json:"monthlyEmi"`
	InterestRate    float64 `bson:"interestRate"    json:"interestRate"`
	RemainingMonths int     `bson:"remainingMonths" json:"remainingMonths"`
	NextDueDate     string  `bson:"nextDueDate"     json:"nextDueDate"`
	Status          string  `bson:"status"          json:"status"`
	Color           string  `bson:"color"           json:"color"`
}

// NewLoan creates an active loan with a generated id and the full
// original amount outstanding.
func NewLoan(loanType, bank string, amount, emi, rate float64, months int, nextDueDate, color string) Loan {
	return Loan{
		ID:              uuid.NewString(),
		Type:            loanType,
		Bank:            bank,
		OriginalAmount:  amount,
		CurrentBalance:  amount,
		MonthlyEmi:      emi,
		InterestRate:    rate,
		RemainingMonths: months,
		NextDueDate:     nextDueDate,
		Status:          LoanActive,
		Color:           color,
	}
}
