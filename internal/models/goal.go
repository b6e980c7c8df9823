package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalType represents what a goal tracks
type GoalType string

const (
	GoalTypeSavings      GoalType = "savings"
	GoalTypeExpenseLimit GoalType = "expense_limit"
	GoalTypeIncomeTarget GoalType = "income_target"
	GoalTypeInvestment   GoalType = "investment"
	GoalTypeDebtPayment  GoalType = "debt_payment"
)

// Valid reports whether t is a known goal type.
func (t GoalType) Valid() bool {
	switch t {
	case GoalTypeSavings, GoalTypeExpenseLimit, GoalTypeIncomeTarget, GoalTypeInvestment, GoalTypeDebtPayment:
		return true
	}
	return false
}

// GoalStatus represents the lifecycle state of a goal
type GoalStatus string

const (
	GoalStatusNotStarted GoalStatus = "not_started"
	GoalStatusInProgress GoalStatus = "in_progress"
	GoalStatusCompleted  GoalStatus = "completed"
	GoalStatusFailed     GoalStatus = "failed"
	GoalStatusAtRisk     GoalStatus = "at_risk"
)

// Valid reports whether s is a known goal status.
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalStatusNotStarted, GoalStatusInProgress, GoalStatusCompleted, GoalStatusFailed, GoalStatusAtRisk:
		return true
	}
	return false
}

// Active reports whether the goal is still being worked towards.
func (s GoalStatus) Active() bool {
	return s == GoalStatusInProgress || s == GoalStatusAtRisk
}

// RecurringPeriod is the cadence of a recurring goal
type RecurringPeriod string

const (
	RecurringDaily   RecurringPeriod = "daily"
	RecurringWeekly  RecurringPeriod = "weekly"
	RecurringMonthly RecurringPeriod = "monthly"
	RecurringYearly  RecurringPeriod = "yearly"
)

// Valid reports whether p is a known period.
func (p RecurringPeriod) Valid() bool {
	switch p {
	case RecurringDaily, RecurringWeekly, RecurringMonthly, RecurringYearly:
		return true
	}
	return false
}

// Goal is a savings or spending target ("pot") with a ledger of entries.
// CurrentAmount is derived from the ledger and overwritten on every read.
type Goal struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Type            GoalType        `json:"type"`
	Status          GoalStatus      `json:"status"`
	TargetAmount    decimal.Decimal `json:"target_amount"`
	CurrentAmount   decimal.Decimal `json:"current_amount"`
	StartDate       Date            `json:"start_date"`
	TargetDate      Date            `json:"target_date"`
	Category        string          `json:"category,omitempty"`
	IsRecurring     bool            `json:"is_recurring"`
	RecurringPeriod RecurringPeriod `json:"recurring_period,omitempty"`
	LinkedEntryIDs  []string        `json:"linked_entry_ids"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Clone returns a copy that does not share the linked id slice.
func (g Goal) Clone() Goal {
	g.LinkedEntryIDs = append([]string{}, g.LinkedEntryIDs...)
	return g
}

// HasEntry reports whether entryID is linked to the goal.
func (g *Goal) HasEntry(entryID string) bool {
	for _, id := range g.LinkedEntryIDs {
		if id == entryID {
			return true
		}
	}
	return false
}

// UnlinkEntry removes entryID from the linked set.
func (g *Goal) UnlinkEntry(entryID string) {
	kept := g.LinkedEntryIDs[:0]
	for _, id := range g.LinkedEntryIDs {
		if id != entryID {
			kept = append(kept, id)
		}
	}
	g.LinkedEntryIDs = kept
}
