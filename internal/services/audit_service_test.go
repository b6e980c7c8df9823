package services

import (
	"strings"
	"testing"

	"finfacil/internal/events"
	"finfacil/internal/models"
	"finfacil/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	t.Run("stores_changes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)

		svc.Log(AuditCreateGoal, "goal", "g1", map[string]interface{}{"name": "Trip"})

		var logs []models.AuditLog
		testutil.AssertNoError(t, db.Find(&logs).Error)
		if len(logs) != 1 {
			t.Fatalf("expected 1 audit log, got %d", len(logs))
		}
		if logs[0].ID == "" {
			t.Error("expected generated id")
		}
		if logs[0].Action != AuditCreateGoal || logs[0].ResourceID != "g1" {
			t.Errorf("unexpected audit log %+v", logs[0])
		}
		if !strings.Contains(logs[0].Changes, `"name":"Trip"`) {
			t.Errorf("expected changes JSON, got %s", logs[0].Changes)
		}
	})

	t.Run("nil_changes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		NewAuditService(db).Log(AuditDeleteGoal, "goal", "g1", nil)

		var log models.AuditLog
		testutil.AssertNoError(t, db.First(&log).Error)
		if log.Changes != "" {
			t.Errorf("expected empty changes, got %s", log.Changes)
		}
	})
}

func TestAuditEvents(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	bus := events.NewBus()
	unsubscribe := AuditEvents(bus, NewAuditService(db))

	f := newGoalFixture(t, testutil.At("2026-01-01"))
	bus.Subscribe(func(e events.Event) { f.events = append(f.events, e) })
	f.svc.publisher = bus

	g := f.createGoal(t, "Trip", "15000", "2026-01-01", "2026-07-01")
	e := f.addIncome(t, g.ID, "500", "2026-01-02")

	var logs []models.AuditLog
	testutil.AssertNoError(t, db.Order("created_at").Find(&logs).Error)
	if len(logs) != 2 {
		t.Fatalf("expected 2 audit logs, got %d", len(logs))
	}

	actions := map[string]string{}
	for _, l := range logs {
		actions[l.Action] = l.ResourceID
	}
	if actions[AuditCreateGoal] != g.ID {
		t.Errorf("expected goal creation audited for %s, got %v", g.ID, actions)
	}
	if actions[AuditAddEntry] != e.ID {
		t.Errorf("expected entry addition audited for %s, got %v", e.ID, actions)
	}

	unsubscribe()
	_, err := f.svc.RemoveEntry(t.Context(), e.ID)
	testutil.AssertNoError(t, err)

	var count int64
	testutil.AssertNoError(t, db.Model(&models.AuditLog{}).Count(&count).Error)
	if count != 2 {
		t.Errorf("expected no audit rows after unsubscribe, got %d", count)
	}
}
