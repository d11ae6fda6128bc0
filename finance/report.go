package finance

import (
	"github.com/shopspring/decimal"

	"financewise/engine/finance/model"
)

// Summary holds derived money totals for a state snapshot. Totals are
// computed with decimal arithmetic so reported figures do not drift from
// float accumulation.
type Summary struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Net           decimal.Decimal
	LoanDebt      decimal.Decimal
}

// Summarize computes totals over the transaction and loan sequences.
func Summarize(s model.State) Summary {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, tx := range s.Transactions {
		amount := decimal.NewFromFloat(tx.Amount)
		switch tx.Type {
		case model.Income:
			income = income.Add(amount)
		case model.Expense:
			expenses = expenses.Add(amount)
		}
	}

	debt := decimal.Zero
	for _, loan := range s.Loans {
		debt = debt.Add(decimal.NewFromFloat(loan.CurrentBalance))
	}

	return Summary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Net:           income.Sub(expenses),
		LoanDebt:      debt,
	}
}

// BudgetUtilization reports spent over allocated per category, in
// category order. Utilization is nil when nothing is allocated.
type BudgetUtilization struct {
	Name        string
	Allocated   decimal.Decimal
	Spent       decimal.Decimal
	Utilization *decimal.Decimal
}

// UtilizationByCategory computes per-category budget utilization.
func UtilizationByCategory(s model.State) []BudgetUtilization {
	out := make([]BudgetUtilization, 0, len(s.BudgetCategories))
	for _, cat := range s.BudgetCategories {
		row := BudgetUtilization{
			Name:      cat.Name,
			Allocated: decimal.NewFromFloat(cat.Allocated),
			Spent:     decimal.NewFromFloat(cat.Spent),
		}
		if !row.Allocated.IsZero() {
			ratio := row.Spent.Div(row.Allocated)
			row.Utilization = &ratio
		}
		out = append(out, row)
	}
	return out
}
