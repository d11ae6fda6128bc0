package model

import "github.com/google/uuid"

// BudgetCategory is one spending envelope. Spent accumulates from
// matching expense transactions and is never decreased by them.
type BudgetCategory struct {
	ID        string  `bson:"id"        json:"id"`
	Name      string  `bson:"name"      json:"name"`
	Allocated float64 `bson:"allocated" json:"allocated"`
	Spent     float64 `bson:"spent"     json:"spent"`
	Color     string  `bson:"color"     json:"color"`
	Icon      string  `bson:"icon"      json:"icon"`
}

// SavingsGoal is a named savings target.
type SavingsGoal struct {
	ID      string  `bson:"id"      json:"id"`
	Name    string  `bson:"name"    json:"name"`
	Target  float64 `bson:"target"  json:"target"`
	Current float64 `bson:"current" json:"current"`
	Color   string  `bson:"color"   json:"color"`
}

// NewBudgetCategory creates a category with a generated id and zero spend.
func NewBudgetCategory(name string, allocated float64, color, icon string) BudgetCategory {
	return BudgetCategory{
		ID:        uuid.NewString(),
		Name:      name,
		Allocated: allocated,
		Color:     color,
		Icon:      icon,
	}
}

// NewSavingsGoal creates a goal with a generated id.
func NewSavingsGoal(name string, target float64, color string) SavingsGoal {
	return SavingsGoal{
		ID:     uuid.NewString(),
		Name:   name,
		Target: target,
		Color:  color,
	}
}
