package services

import (
	"math"
	"testing"
	"time"

	"finfacil/internal/models"
	"finfacil/internal/testutil"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestSummarizeEntries(t *testing.T) {
	t.Run("empty_ledger", func(t *testing.T) {
		s := SummarizeEntries("goal-x", nil)

		testutil.AssertDecimal(t, "money in", s.MoneyIn, "0")
		testutil.AssertDecimal(t, "money out", s.MoneyOut, "0")
		testutil.AssertDecimal(t, "balance", s.Balance, "0")
		if s.EntryCount != 0 {
			t.Errorf("expected 0 entries, got %d", s.EntryCount)
		}
		if s.LastEntryDate != nil {
			t.Errorf("expected no last entry date, got %v", s.LastEntryDate)
		}
	})

	t.Run("income_and_expense", func(t *testing.T) {
		entries := []models.GoalEntry{
			testutil.NewTestEntry("g", "300", models.EntryTypeIncome, testutil.At("2026-01-10")),
			testutil.NewTestEntry("g", "75.50", models.EntryTypeExpense, testutil.At("2026-01-20")),
			testutil.NewTestEntry("g", "100", models.EntryTypeIncome, testutil.At("2026-01-05")),
		}

		s := SummarizeEntries("g", entries)

		testutil.AssertDecimal(t, "money in", s.MoneyIn, "400")
		testutil.AssertDecimal(t, "money out", s.MoneyOut, "75.50")
		testutil.AssertDecimal(t, "balance", s.Balance, "324.50")
		if s.EntryCount != 3 {
			t.Errorf("expected 3 entries, got %d", s.EntryCount)
		}
		if s.LastEntryDate == nil || !s.LastEntryDate.Equal(testutil.At("2026-01-20")) {
			t.Errorf("expected last entry date 2026-01-20, got %v", s.LastEntryDate)
		}
	})

	t.Run("ignores_other_goals", func(t *testing.T) {
		entries := []models.GoalEntry{
			testutil.NewTestEntry("a", "500", models.EntryTypeIncome, testutil.At("2026-01-10")),
			testutil.NewTestEntry("b", "900", models.EntryTypeIncome, testutil.At("2026-01-11")),
		}

		s := SummarizeEntries("a", entries)

		testutil.AssertDecimal(t, "balance", s.Balance, "500")
		if s.EntryCount != 1 {
			t.Errorf("expected 1 entry, got %d", s.EntryCount)
		}
	})

	t.Run("negative_balance", func(t *testing.T) {
		entries := []models.GoalEntry{
			testutil.NewTestEntry("g", "100", models.EntryTypeIncome, testutil.At("2026-01-10")),
			testutil.NewTestEntry("g", "250", models.EntryTypeExpense, testutil.At("2026-01-11")),
		}

		s := SummarizeEntries("g", entries)
		testutil.AssertDecimal(t, "balance", s.Balance, "-150")
	})
}

func TestComputeProgress(t *testing.T) {
	yearGoal := func() models.Goal {
		return testutil.NewTestGoal("30000", testutil.Day("2026-01-01"), testutil.Day("2026-12-31"))
	}
	summaryOf := func(g models.Goal, balance string) PotSummary {
		return PotSummary{GoalID: g.ID, MoneyIn: testutil.Dec(balance), Balance: testutil.Dec(balance)}
	}

	t.Run("ahead_of_schedule", func(t *testing.T) {
		g := yearGoal()
		now := testutil.At("2026-02-01")

		p := ComputeProgress(g, summaryOf(g, "21000"), now)

		if !approx(p.Percentage, 70) {
			t.Errorf("expected 70%%, got %f", p.Percentage)
		}
		testutil.AssertDecimal(t, "remaining", p.RemainingAmount, "9000")
		if p.DaysRemaining != 333 {
			t.Errorf("expected 333 days remaining, got %d", p.DaysRemaining)
		}
		testutil.AssertDecimal(t, "daily target", p.DailyTarget, "27.03")
		testutil.AssertDecimal(t, "weekly target", p.WeeklyTarget, "189.19")
		testutil.AssertDecimal(t, "monthly target", p.MonthlyTarget, "810.81")
		if p.ExpectedPercentage <= 0 || p.ExpectedPercentage >= 15 {
			t.Errorf("expected roughly one month of a year elapsed, got %f", p.ExpectedPercentage)
		}
		if !approx(p.Difference, p.Percentage-p.ExpectedPercentage) {
			t.Errorf("difference %f does not match %f - %f", p.Difference, p.Percentage, p.ExpectedPercentage)
		}
		if p.Pacing != PacingAhead {
			t.Errorf("expected pacing ahead, got %s", p.Pacing)
		}
		if !p.OnTrack {
			t.Error("expected on track")
		}
		if p.Overdue {
			t.Error("expected not overdue")
		}
		if p.ProjectedCompletionDate == nil {
			t.Fatal("expected a projected completion date")
		}
		want := now.Add(time.Duration(p.DaysRemaining) * day)
		if d := p.ProjectedCompletionDate.Sub(want); d > time.Minute || d < -time.Minute {
			t.Errorf("expected projection near %v, got %v", want, p.ProjectedCompletionDate)
		}
	})

	t.Run("on_pace_within_band", func(t *testing.T) {
		g := testutil.NewTestGoal("1000", testutil.Day("2026-01-01"), testutil.Day("2026-01-11"))
		// 5 of 10 days elapsed.
		now := testutil.Day("2026-01-06").Time

		p := ComputeProgress(g, summaryOf(g, "480"), now)

		if !approx(p.ExpectedPercentage, 50) {
			t.Fatalf("expected 50%% expected, got %f", p.ExpectedPercentage)
		}
		if p.Pacing != PacingOnPace {
			t.Errorf("expected on_pace, got %s", p.Pacing)
		}
		if !p.OnTrack {
			t.Error("48% of an expected 50% should be on track")
		}
	})

	t.Run("behind_schedule", func(t *testing.T) {
		g := testutil.NewTestGoal("1000", testutil.Day("2026-01-01"), testutil.Day("2026-01-11"))
		now := testutil.Day("2026-01-06").Time

		p := ComputeProgress(g, summaryOf(g, "300"), now)

		if p.Pacing != PacingBehind {
			t.Errorf("expected behind, got %s", p.Pacing)
		}
		if p.OnTrack {
			t.Error("30% of an expected 50% should not be on track")
		}
	})

	t.Run("target_reached", func(t *testing.T) {
		g := yearGoal()

		p := ComputeProgress(g, summaryOf(g, "31000"), testutil.At("2027-03-01"))

		if p.Percentage != 100 {
			t.Errorf("expected percentage capped at 100, got %f", p.Percentage)
		}
		testutil.AssertDecimal(t, "remaining", p.RemainingAmount, "0")
		if p.Pacing != PacingCompleted {
			t.Errorf("expected completed pacing, got %s", p.Pacing)
		}
		if p.Overdue {
			t.Error("a reached goal is never overdue")
		}
		if p.ProjectedCompletionDate != nil {
			t.Errorf("expected no projection, got %v", p.ProjectedCompletionDate)
		}
	})

	t.Run("overdue", func(t *testing.T) {
		g := testutil.NewTestGoal("1000", testutil.Day("2025-10-01"), testutil.Day("2026-01-15"))

		p := ComputeProgress(g, summaryOf(g, "450"), testutil.At("2026-02-01"))

		if !p.Overdue {
			t.Error("expected overdue")
		}
		if p.DaysRemaining != 0 {
			t.Errorf("expected 0 days remaining, got %d", p.DaysRemaining)
		}
		testutil.AssertDecimal(t, "daily target", p.DailyTarget, "0")
		if p.ProjectedCompletionDate != nil {
			t.Error("expected no projection without days remaining")
		}
		if !approx(p.Percentage, 45) {
			t.Errorf("expected 45%%, got %f", p.Percentage)
		}
	})

	t.Run("completed_status_not_overdue", func(t *testing.T) {
		g := testutil.NewTestGoal("1000", testutil.Day("2025-10-01"), testutil.Day("2026-01-15"))
		g.Status = models.GoalStatusCompleted

		p := ComputeProgress(g, summaryOf(g, "450"), testutil.At("2026-02-01"))
		if p.Overdue {
			t.Error("completed goals are not overdue")
		}
	})

	t.Run("negative_balance_clamped", func(t *testing.T) {
		g := yearGoal()

		p := ComputeProgress(g, summaryOf(g, "-500"), testutil.At("2026-02-01"))

		if p.Percentage != 0 {
			t.Errorf("expected 0%%, got %f", p.Percentage)
		}
		testutil.AssertDecimal(t, "remaining", p.RemainingAmount, "30500")
	})

	t.Run("zero_length_window", func(t *testing.T) {
		g := testutil.NewTestGoal("100", testutil.Day("2026-03-01"), testutil.Day("2026-03-01"))

		p := ComputeProgress(g, summaryOf(g, "10"), testutil.Day("2026-02-01").Time)

		if p.ExpectedPercentage != 0 {
			t.Errorf("expected 0 expected percentage, got %f", p.ExpectedPercentage)
		}
	})

	t.Run("before_start", func(t *testing.T) {
		g := yearGoal()

		p := ComputeProgress(g, summaryOf(g, "0"), testutil.At("2025-12-01"))

		if p.ExpectedPercentage >= 0 {
			t.Errorf("expected negative expected percentage before the start, got %f", p.ExpectedPercentage)
		}
		if !p.OnTrack {
			t.Error("a goal that has not started yet is on track")
		}
	})

	t.Run("far_future_target", func(t *testing.T) {
		g := testutil.NewTestGoal("1000", testutil.Day("2026-01-01"), testutil.Day("9999-12-31"))
		now := testutil.At("2026-10-15")

		p := ComputeProgress(g, summaryOf(g, "0"), now)

		// Noon to midnight rounds up to the whole day.
		whole := int((g.TargetDate.Unix() - testutil.Day("2026-10-15").Unix()) / (24 * 60 * 60))
		if p.DaysRemaining != whole {
			t.Errorf("expected %d days remaining, got %d", whole, p.DaysRemaining)
		}
		if p.ProjectedCompletionDate == nil {
			t.Fatal("expected a projected completion date")
		}
		want := now.AddDate(0, 0, p.DaysRemaining)
		if !p.ProjectedCompletionDate.After(g.TargetDate.Time) || p.ProjectedCompletionDate.Year() != 9999 {
			t.Errorf("expected projection just past the target date, got %v", p.ProjectedCompletionDate)
		}
		if d := p.ProjectedCompletionDate.Sub(want); d > time.Minute || d < -time.Minute {
			t.Errorf("expected projection near %v, got %v", want, p.ProjectedCompletionDate)
		}
		if p.ExpectedPercentage <= 0 || p.ExpectedPercentage >= 1 {
			t.Errorf("expected a tiny expected percentage, got %f", p.ExpectedPercentage)
		}
	})
}
