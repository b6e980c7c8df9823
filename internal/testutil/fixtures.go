package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"finfacil/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Dec parses a decimal literal and panics on malformed input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Day returns the calendar date for a YYYY-MM-DD literal.
func Day(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// At returns noon UTC of a YYYY-MM-DD literal, for use as a fixed "now".
func At(s string) time.Time {
	return Day(s).Add(12 * time.Hour)
}

// FixedClock returns a clock frozen at t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// NewTestGoal builds an unsaved savings goal with a unique id and name.
func NewTestGoal(target string, start, end models.Date) models.Goal {
	n := nextID()
	created := start.Time
	return models.Goal{
		ID:             fmt.Sprintf("goal-%d", n),
		Name:           fmt.Sprintf("Test Goal %d", n),
		Type:           models.GoalTypeSavings,
		Status:         models.GoalStatusInProgress,
		TargetAmount:   Dec(target),
		StartDate:      start,
		TargetDate:     end,
		LinkedEntryIDs: []string{},
		CreatedAt:      created,
		UpdatedAt:      created,
	}
}

// NewTestEntry builds an unsaved ledger entry for goalID.
func NewTestEntry(goalID string, amount string, entryType models.EntryType, date time.Time) models.GoalEntry {
	n := nextID()
	return models.GoalEntry{
		ID:          fmt.Sprintf("entry-%d", n),
		GoalID:      goalID,
		Amount:      Dec(amount),
		Type:        entryType,
		Description: fmt.Sprintf("Test Entry %d", n),
		Date:        date,
		CreatedAt:   date,
	}
}
