package model

// UserProfile describes the signed-in user. One per principal.
type UserProfile struct {
	Name           string   `bson:"name"           json:"name"`
	Age            int      `bson:"age"            json:"age"`
	Profession     string   `bson:"profession"     json:"profession"`
	MonthlyIncome  float64  `bson:"monthlyIncome"  json:"monthlyIncome"`
	CurrentSavings float64  `bson:"currentSavings" json:"currentSavings"`
	FinancialGoals []string `bson:"financialGoals" json:"financialGoals"`
	ShowBalance    bool     `bson:"showBalance"    json:"showBalance"`
}

// UserStats tracks learning progress counters.
type UserStats struct {
	CoursesCompleted int     `bson:"coursesCompleted" json:"coursesCompleted"`
	TotalHours       float64 `bson:"totalHours"       json:"totalHours"`
	StreakDays       int     `bson:"streakDays"       json:"streakDays"`
	Points           int     `bson:"points"           json:"points"`
}
