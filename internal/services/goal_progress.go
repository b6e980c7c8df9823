package services

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"finfacil/internal/models"
)

// Pacing classifies progress against the time-proportional expectation.
type Pacing string

const (
	PacingAhead     Pacing = "ahead"
	PacingOnPace    Pacing = "on_pace"
	PacingBehind    Pacing = "behind"
	PacingCompleted Pacing = "completed"
)

const (
	// pacingBand is the percentage-point margin around the expectation that
	// still counts as on pace.
	pacingBand = 5.0
	// onTrackRatio is the share of the expected percentage a goal must
	// reach to be considered on track.
	onTrackRatio = 0.9

	day           = 24 * time.Hour
	secondsPerDay = 24 * 60 * 60
)

var (
	hundred = decimal.NewFromInt(100)
	seven   = decimal.NewFromInt(7)
	thirty  = decimal.NewFromInt(30)
)

// PotSummary is the derived ledger view of one goal.
type PotSummary struct {
	GoalID        string          `json:"goal_id"`
	MoneyIn       decimal.Decimal `json:"money_in"`
	MoneyOut      decimal.Decimal `json:"money_out"`
	Balance       decimal.Decimal `json:"balance"`
	EntryCount    int             `json:"entry_count"`
	LastEntryDate *time.Time      `json:"last_entry_date,omitempty"`
}

// GoalProgress contains completion, pacing and contribution targets for a goal.
type GoalProgress struct {
	GoalID                  string          `json:"goal_id"`
	Percentage              float64         `json:"percentage"`
	RemainingAmount         decimal.Decimal `json:"remaining_amount"`
	DaysRemaining           int             `json:"days_remaining"`
	DailyTarget             decimal.Decimal `json:"daily_target"`
	WeeklyTarget            decimal.Decimal `json:"weekly_target"`
	MonthlyTarget           decimal.Decimal `json:"monthly_target"`
	ExpectedPercentage      float64         `json:"expected_percentage"`
	Difference              float64         `json:"difference"`
	OnTrack                 bool            `json:"on_track"`
	Pacing                  Pacing          `json:"pacing"`
	Overdue                 bool            `json:"overdue"`
	ProjectedCompletionDate *time.Time      `json:"projected_completion_date"`
}

// SummarizeEntries folds the entries that belong to goalID. Entries of other
// goals are ignored, so the full ledger may be passed.
func SummarizeEntries(goalID string, entries []models.GoalEntry) PotSummary {
	summary := PotSummary{
		GoalID:   goalID,
		MoneyIn:  decimal.Zero,
		MoneyOut: decimal.Zero,
		Balance:  decimal.Zero,
	}

	var last time.Time
	for _, e := range entries {
		if e.GoalID != goalID {
			continue
		}
		switch e.Type {
		case models.EntryTypeIncome:
			summary.MoneyIn = summary.MoneyIn.Add(e.Amount)
		case models.EntryTypeExpense:
			summary.MoneyOut = summary.MoneyOut.Add(e.Amount)
		default:
			continue
		}
		summary.EntryCount++
		if e.Date.After(last) {
			last = e.Date
		}
	}

	summary.Balance = summary.MoneyIn.Sub(summary.MoneyOut)
	if !last.IsZero() {
		summary.LastEntryDate = &last
	}
	return summary
}

// ComputeProgress derives progress metrics for goal from its summary as of now.
func ComputeProgress(goal models.Goal, summary PotSummary, now time.Time) GoalProgress {
	balance := summary.Balance
	target := goal.TargetAmount

	var percentage float64
	if target.IsPositive() {
		percentage = balance.Div(target).Mul(hundred).InexactFloat64()
		percentage = math.Min(math.Max(percentage, 0), 100)
	}

	remaining := decimal.Max(target.Sub(balance), decimal.Zero)

	daysRemaining := ceilDays(now, goal.TargetDate.Time)
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	daily := decimal.Zero
	if daysRemaining > 0 {
		daily = remaining.Div(decimal.NewFromInt(int64(daysRemaining)))
	}

	totalDays := ceilDays(goal.StartDate.Time, goal.TargetDate.Time)
	elapsedDays := ceilDays(goal.StartDate.Time, now)
	var expected float64
	if totalDays > 0 {
		expected = float64(elapsedDays) / float64(totalDays) * 100
	}
	difference := percentage - expected

	progress := GoalProgress{
		GoalID:             goal.ID,
		Percentage:         percentage,
		RemainingAmount:    remaining.Round(2),
		DaysRemaining:      daysRemaining,
		DailyTarget:        daily.Round(2),
		WeeklyTarget:       daily.Mul(seven).Round(2),
		MonthlyTarget:      daily.Mul(thirty).Round(2),
		ExpectedPercentage: expected,
		Difference:         difference,
		OnTrack:            percentage >= expected*onTrackRatio,
		Pacing:             classifyPacing(percentage, difference),
		Overdue: now.After(goal.TargetDate.Time) &&
			goal.Status != models.GoalStatusCompleted &&
			percentage < 100,
	}

	if daily.IsPositive() {
		daysNeeded := remaining.Div(daily)
		whole := daysNeeded.Floor()
		fraction := daysNeeded.Sub(whole).InexactFloat64()
		projected := now.AddDate(0, 0, int(whole.IntPart())).Add(time.Duration(fraction * float64(day)))
		progress.ProjectedCompletionDate = &projected
	}

	return progress
}

func classifyPacing(percentage, difference float64) Pacing {
	switch {
	case percentage >= 100:
		return PacingCompleted
	case difference > pacingBand:
		return PacingAhead
	case difference < -pacingBand:
		return PacingBehind
	default:
		return PacingOnPace
	}
}

// ceilDays counts the days from one instant to another, rounded up. It works
// on Unix seconds since time.Duration saturates after about 292 years.
func ceilDays(from, to time.Time) int {
	seconds := float64(to.Unix()-from.Unix()) + float64(to.Nanosecond()-from.Nanosecond())/1e9
	return int(math.Ceil(seconds / secondsPerDay))
}
