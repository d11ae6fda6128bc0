package model

// DefaultState returns the state used before any principal is known and
// as the per-slice fallback during hydration. The course catalog is the
// fixed starter set; everything else is empty.
func DefaultState() State {
	return State{
		User: UserProfile{
			FinancialGoals: []string{},
			ShowBalance:    true,
		},
		Transactions:     []Transaction{},
		BudgetCategories: []BudgetCategory{},
		Loans:            []Loan{},
		Courses:          DefaultCourses(),
		Achievements:     []string{},
		SavingsGoals:     []SavingsGoal{},
	}
}

// DefaultCourses returns the starter financial-literacy catalog.
func DefaultCourses() []Course {
	return []Course{
		{
			ID:          "1",
			Title:       "Budgeting Basics",
			Description: "Learn the fundamentals of creating and maintaining a budget",
			Duration:    "2 hours",
			Level:       "Beginner",
			Modules:     6,
			Rating:      4.8,
			Students:    1250,
			Thumbnail:   "💰",
			Status:      CourseInProgress,
		},
		{
			ID:          "2",
			Title:       "Investment Fundamentals",
			Description: "Understanding stocks, bonds, and mutual funds",
			Duration:    "3 hours",
			Level:       "Intermediate",
			Modules:     8,
			Rating:      4.9,
			Students:    980,
			Thumbnail:   "📈",
			Status:      CourseInProgress,
		},
		{
			ID:          "3",
			Title:       "Credit Score Mastery",
			Description: "How to build and maintain an excellent credit score",
			Duration:    "1.5 hours",
			Level:       "Beginner",
			Modules:     4,
			Rating:      4.7,
			Students:    2100,
			Thumbnail:   "🏆",
			Status:      CourseInProgress,
		},
	}
}
