package testutil_test

import (
	"testing"
	"time"

	"finfacil/internal/errors"
	"finfacil/internal/models"
	"finfacil/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	for _, table := range []string{"kv_entries", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDB_Isolated(t *testing.T) {
	db1 := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db1)
	db2 := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db2)

	if err := db1.Create(&models.KVEntry{Key: "goals", Value: []byte("[]"), UpdatedAt: time.Now()}).Error; err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	var count int64
	db2.Model(&models.KVEntry{}).Count(&count)
	if count != 0 {
		t.Errorf("expected second database to be empty, got %d rows", count)
	}
}

func TestFixtures(t *testing.T) {
	goal := testutil.NewTestGoal("1000", testutil.Day("2026-01-01"), testutil.Day("2026-12-31"))
	if goal.ID == "" {
		t.Fatal("goal should have an ID")
	}
	testutil.AssertDecimal(t, "target", goal.TargetAmount, "1000.00")

	other := testutil.NewTestGoal("1000", testutil.Day("2026-01-01"), testutil.Day("2026-12-31"))
	if other.ID == goal.ID {
		t.Error("fixture ids should be unique")
	}

	entry := testutil.NewTestEntry(goal.ID, "250", models.EntryTypeExpense, testutil.At("2026-02-01"))
	testutil.AssertDecimal(t, "signed amount", entry.Signed(), "-250")
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrGoalNotFound, "custom message")
	testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
