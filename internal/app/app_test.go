package app

import (
	"context"
	"testing"
	"time"

	"finfacil/internal/logger"
	"finfacil/internal/models"
	"finfacil/internal/pagination"
	"finfacil/internal/services"
	"finfacil/internal/store"
	"finfacil/internal/testutil"
)

func init() {
	logger.Init("test")
}

func TestSeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	a := New(ctx, store.NewMemory(), nil)
	defer a.Close()

	seeded, err := a.SeedIfEmpty(ctx, "", time.Now())
	testutil.AssertNoError(t, err)
	if !seeded {
		t.Fatal("expected an empty store to be seeded")
	}

	page, err := a.GoalService.GetGoals(pagination.PageRequest{Page: 1, PageSize: 20}, services.GoalFilter{})
	testutil.AssertNoError(t, err)
	if page.TotalItems != 5 {
		t.Errorf("expected 5 goals, got %d", page.TotalItems)
	}

	seeded, err = a.SeedIfEmpty(ctx, "", time.Now())
	testutil.AssertNoError(t, err)
	if seeded {
		t.Error("expected a populated store to be left alone")
	}
}

func TestSeedIfEmpty_KeepsUserData(t *testing.T) {
	ctx := context.Background()
	a := New(ctx, store.NewMemory(), nil)

	_, err := a.NotificationService.Create(ctx, services.NotificationRequest{
		Type:  models.NotificationTypeSystem,
		Title: "hello",
	})
	testutil.AssertNoError(t, err)

	seeded, err := a.SeedIfEmpty(ctx, "", time.Now())
	testutil.AssertNoError(t, err)
	if seeded || a.Goals.Len() != 0 {
		t.Error("expected existing notifications to block seeding")
	}
}

func TestSeed_Reset(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	a := New(ctx, s, nil)

	g, err := a.GoalService.CreateGoal(ctx, services.CreateGoalInput{
		Name:         "Scratch",
		Type:         models.GoalTypeSavings,
		TargetAmount: testutil.Dec("10"),
		TargetDate:   testutil.Day("2099-01-01"),
	})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, a.Seed(ctx, "", time.Now()))

	if _, err := a.GoalService.GetGoalByID(g.ID); err == nil {
		t.Error("expected reset to drop the scratch goal")
	}

	// A fresh App over the same store sees the seeded data.
	reopened := New(ctx, s, nil)
	summary := reopened.GoalService.Summarize("1")
	testutil.AssertDecimal(t, "emergency fund balance", summary.Balance, "21000")
}

func TestNew_Audit(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	a := New(ctx, store.NewGorm(db), services.NewAuditService(db))

	_, err := a.NotificationService.Create(ctx, services.NotificationRequest{
		Type:  models.NotificationTypeAlert,
		Title: "limit",
	})
	testutil.AssertNoError(t, err)

	var count int64
	db.Model(&models.AuditLog{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 audit row, got %d", count)
	}

	a.Close()
	_, err = a.NotificationService.Create(ctx, services.NotificationRequest{
		Type:  models.NotificationTypeAlert,
		Title: "after close",
	})
	testutil.AssertNoError(t, err)
	db.Model(&models.AuditLog{}).Count(&count)
	if count != 1 {
		t.Errorf("expected no audit rows after close, got %d", count)
	}
}
