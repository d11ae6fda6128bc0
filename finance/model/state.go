package model

// State is the aggregate managed by the finance reducer. It is replaced
// wholesale on sign-in and never partially merged across principals.
type State struct {
	User             UserProfile      `bson:"user"             json:"user"`
	Transactions     []Transaction    `bson:"transactions"     json:"transactions"`
	BudgetCategories []BudgetCategory `bson:"budgetCategories" json:"budgetCategories"`
	Loans            []Loan           `bson:"loans"            json:"loans"`
	Courses          []Course         `bson:"courses"          json:"courses"`
	Achievements     []string         `bson:"achievements"     json:"achievements"`
	SavingsGoals     []SavingsGoal    `bson:"savingsGoals"     json:"savingsGoals"`
	UserStats        UserStats        `bson:"userStats"        json:"userStats"`
}

// Clone returns a deep copy of the state. Element structs hold no
// reference types besides the profile's goal list, so copying the slices
// and that list is sufficient.
func (s State) Clone() State {
	out := s
	out.User.FinancialGoals = append([]string(nil), s.User.FinancialGoals...)
	out.Transactions = append([]Transaction(nil), s.Transactions...)
	out.BudgetCategories = append([]BudgetCategory(nil), s.BudgetCategories...)
	out.Loans = append([]Loan(nil), s.Loans...)
	out.Courses = append([]Course(nil), s.Courses...)
	out.Achievements = append([]string(nil), s.Achievements...)
	out.SavingsGoals = append([]SavingsGoal(nil), s.SavingsGoals...)
	return out
}
