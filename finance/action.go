// Package finance holds the application state container: typed actions
// and a pure reducer producing the next state from the current one.
// The package performs no I/O and knows nothing about storage or identity.
package finance

import "financewise/engine/finance/model"

// Action is one state transition request. Implementations are the only
// way consumers may change the application state.
type Action interface {
	isAction()
}

// InitializeState replaces the entire state with a snapshot. Used by the
// session orchestrator after hydration and after a data reset.
type InitializeState struct {
	State model.State
}

// SetUserData shallow-merges the set fields of the patch into the profile.
type SetUserData struct {
	Patch ProfilePatch
}

// ToggleBalanceVisibility flips the profile's show-balance flag.
type ToggleBalanceVisibility struct{}

// AddTransaction prepends a transaction. Expense transactions also raise
// the spent amount of every budget category whose name contains the
// transaction's category label (case-insensitive).
type AddTransaction struct {
	Transaction model.Transaction
}

// UpdateBudgetCategory replaces the category with the matching id
// wholesale. A no-op when the id is absent.
type UpdateBudgetCategory struct {
	Category model.BudgetCategory
}

// AddBudgetCategory appends a category.
type AddBudgetCategory struct {
	Category model.BudgetCategory
}

// AddSavingsGoal appends a savings goal.
type AddSavingsGoal struct {
	Goal model.SavingsGoal
}

// UpdateCourseProgress sets the progress field of the matching course.
// A no-op when the id is absent.
type UpdateCourseProgress struct {
	CourseID string
	Progress float64
}

// MakeLoanPayment reduces the matching loan's balance, clamped at zero.
// A no-op when the id is absent.
type MakeLoanPayment struct {
	LoanID string
	Amount float64
}

// AddLoan appends a loan.
type AddLoan struct {
	Loan model.Loan
}

// UpdateLoan shallow-merges the set fields of the patch into the
// matching loan. A no-op when the id is absent.
type UpdateLoan struct {
	LoanID string
	Patch  LoanPatch
}

// ClearLoans empties the loan sequence.
type ClearLoans struct{}

func (InitializeState) isAction()         {}
func (SetUserData) isAction()             {}
func (ToggleBalanceVisibility) isAction() {}
func (AddTransaction) isAction()          {}
func (UpdateBudgetCategory) isAction()    {}
func (AddBudgetCategory) isAction()       {}
func (AddSavingsGoal) isAction()          {}
func (UpdateCourseProgress) isAction()    {}
func (MakeLoanPayment) isAction()         {}
func (AddLoan) isAction()                 {}
func (UpdateLoan) isAction()              {}
func (ClearLoans) isAction()              {}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	Name           *string
	Age            *int
	Profession     *string
	MonthlyIncome  *float64
	CurrentSavings *float64
	FinancialGoals *[]string
	ShowBalance    *bool
}

func (p ProfilePatch) apply(u model.UserProfile) model.UserProfile {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Profession != nil {
		u.Profession = *p.Profession
	}
	if p.MonthlyIncome != nil {
		u.MonthlyIncome = *p.MonthlyIncome
	}
	if p.CurrentSavings != nil {
		u.CurrentSavings = *p.CurrentSavings
	}
	if p.FinancialGoals != nil {
		u.FinancialGoals = append([]string(nil), *p.FinancialGoals...)
	}
	if p.ShowBalance != nil {
		u.ShowBalance = *p.ShowBalance
	}
	return u
}

// LoanPatch is a partial loan update. Nil fields are left untouched.
type LoanPatch struct {
	Type            *string
	Bank            *string
	OriginalAmount  *float64
	CurrentBalance  *float64
	MonthlyEmi      *float64
	InterestRate    *float64
	RemainingMonths *int
	NextDueDate     *string
	Status          *string
	Color           *string
}

func (p LoanPatch) apply(l model.Loan) model.Loan {
	if p.Type != nil {
		l.Type = *p.Type
	}
	if p.Bank != nil {
		l.Bank = *p.Bank
	}
	if p.OriginalAmount != nil {
		l.OriginalAmount = *p.OriginalAmount
	}
	if p.CurrentBalance != nil {
		l.CurrentBalance = *p.CurrentBalance
	}
	if p.MonthlyEmi != nil {
		l.MonthlyEmi = *p.MonthlyEmi
	}
	if p.InterestRate != nil {
		l.InterestRate = *p.InterestRate
	}
	if p.RemainingMonths != nil {
		l.RemainingMonths = *p.RemainingMonths
	}
	if p.NextDueDate != nil {
		l.NextDueDate = *p.NextDueDate
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	if p.Color != nil {
		l.Color = *p.Color
	}
	return l
}

// String pins a string for use in a patch.
func String(s string) *string { return &s }

// Float pins a float64 for use in a patch.
func Float(f float64) *float64 { return &f }

// Int pins an int for use in a patch.
func Int(i int) *int { return &i }

// Bool pins a bool for use in a patch.
func Bool(b bool) *bool { return &b }
