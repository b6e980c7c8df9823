package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType is the direction of a goal ledger entry
type EntryType string

const (
	// EntryTypeIncome adds money to the pot
	EntryTypeIncome EntryType = "income"
	// EntryTypeExpense takes money out of the pot
	EntryTypeExpense EntryType = "expense"
)

// Valid reports whether t is income or expense.
func (t EntryType) Valid() bool {
	return t == EntryTypeIncome || t == EntryTypeExpense
}

// GoalEntry is a single income or expense record scoped to one goal.
type GoalEntry struct {
	ID          string          `json:"id"`
	GoalID      string          `json:"goal_id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        EntryType       `json:"type"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Signed returns the amount with the sign of its effect on the pot.
func (e GoalEntry) Signed() decimal.Decimal {
	if e.Type == EntryTypeExpense {
		return e.Amount.Neg()
	}
	return e.Amount
}
