package finance

import (
	"strings"

	"financewise/engine/finance/model"
)

// Reduce produces the next state from the current state and one action.
// It is a total function: actions referencing an unknown id leave the
// state unchanged, and the input state is never mutated.
func Reduce(s model.State, a Action) model.State {
	next := s.Clone()

	switch act := a.(type) {
	case InitializeState:
		return act.State.Clone()

	case SetUserData:
		next.User = act.Patch.apply(next.User)

	case ToggleBalanceVisibility:
		next.User.ShowBalance = !next.User.ShowBalance

	case AddTransaction:
		next.Transactions = prepend(next.Transactions, act.Transaction)
		if act.Transaction.Type == model.Expense {
			label := strings.ToLower(act.Transaction.Category)
			for i, cat := range next.BudgetCategories {
				if strings.Contains(strings.ToLower(cat.Name), label) {
					next.BudgetCategories[i].Spent += act.Transaction.Amount
				}
			}
		}

	case UpdateBudgetCategory:
		for i, cat := range next.BudgetCategories {
			if cat.ID == act.Category.ID {
				next.BudgetCategories[i] = act.Category
			}
		}

	case AddBudgetCategory:
		next.BudgetCategories = append(next.BudgetCategories, act.Category)

	case AddSavingsGoal:
		next.SavingsGoals = append(next.SavingsGoals, act.Goal)

	case UpdateCourseProgress:
		for i, course := range next.Courses {
			if course.ID == act.CourseID {
				next.Courses[i].Progress = act.Progress
			}
		}

	case MakeLoanPayment:
		for i, loan := range next.Loans {
			if loan.ID == act.LoanID {
				next.Loans[i].CurrentBalance = max(0, loan.CurrentBalance-act.Amount)
			}
		}

	case AddLoan:
		next.Loans = append(next.Loans, act.Loan)

	case UpdateLoan:
		for i, loan := range next.Loans {
			if loan.ID == act.LoanID {
				next.Loans[i] = act.Patch.apply(loan)
			}
		}

	case ClearLoans:
		next.Loans = []model.Loan{}
	}

	return next
}

func prepend(txs []model.Transaction, tx model.Transaction) []model.Transaction {
	out := make([]model.Transaction, 0, len(txs)+1)
	out = append(out, tx)
	return append(out, txs...)
}
