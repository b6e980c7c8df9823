package repository

import (
	"context"
	"errors"
	"testing"

	"finfacil/internal/models"
	"finfacil/internal/store"
	"finfacil/internal/testutil"
)

func goalKey(g models.Goal) string { return g.ID }

// failingStore loads like a Memory store but refuses every save.
type failingStore struct {
	*store.Memory
}

func (failingStore) Save(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestCollection_PutGetList(t *testing.T) {
	ctx := context.Background()
	c := Open(ctx, store.NewMemory(), KeyGoals, goalKey)

	g1 := testutil.NewTestGoal("1000", testutil.Day("2026-01-01"), testutil.Day("2026-06-30"))
	g2 := testutil.NewTestGoal("2000", testutil.Day("2026-01-01"), testutil.Day("2026-06-30"))
	testutil.AssertNoError(t, c.Put(ctx, g1))
	testutil.AssertNoError(t, c.Put(ctx, g2))

	got, ok := c.Get(g1.ID)
	if !ok {
		t.Fatal("expected goal to be found")
	}
	if got.Name != g1.Name {
		t.Errorf("expected name %s, got %s", g1.Name, got.Name)
	}

	list := c.List()
	if len(list) != 2 || list[0].ID != g1.ID || list[1].ID != g2.ID {
		t.Errorf("expected insertion order [%s %s], got %v", g1.ID, g2.ID, list)
	}

	g1.Name = "Renamed"
	testutil.AssertNoError(t, c.Put(ctx, g1))
	if c.Len() != 2 {
		t.Errorf("replacing should not grow the collection, got %d", c.Len())
	}
	got, _ = c.Get(g1.ID)
	if got.Name != "Renamed" {
		t.Errorf("expected replaced name, got %s", got.Name)
	}
}

func TestCollection_Delete(t *testing.T) {
	ctx := context.Background()
	c := Open(ctx, store.NewMemory(), KeyGoals, goalKey)

	g1 := testutil.NewTestGoal("1000", testutil.Day("2026-01-01"), testutil.Day("2026-06-30"))
	g2 := testutil.NewTestGoal("1000", testutil.Day("2026-01-01"), testutil.Day("2026-06-30"))
	testutil.AssertNoError(t, c.Put(ctx, g1))
	testutil.AssertNoError(t, c.Put(ctx, g2))

	deleted, err := c.Delete(ctx, g1.ID)
	testutil.AssertNoError(t, err)
	if !deleted {
		t.Fatal("expected delete to report true")
	}
	if _, ok := c.Get(g1.ID); ok {
		t.Error("deleted goal should not be found")
	}
	if _, ok := c.Get(g2.ID); !ok {
		t.Error("remaining goal should still be found after reindex")
	}

	deleted, err = c.Delete(ctx, "unknown")
	testutil.AssertNoError(t, err)
	if deleted {
		t.Error("deleting an unknown id should report false")
	}
}

func TestCollection_ReloadsFromStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()

	c := Open(ctx, s, KeyGoals, goalKey)
	g := testutil.NewTestGoal("30000", testutil.Day("2026-01-01"), testutil.Day("2026-12-31"))
	testutil.AssertNoError(t, c.Put(ctx, g))

	reopened := Open(ctx, s, KeyGoals, goalKey)
	got, ok := reopened.Get(g.ID)
	if !ok {
		t.Fatal("expected goal to survive a reload")
	}
	testutil.AssertDecimal(t, "target", got.TargetAmount, "30000")
	if got.TargetDate.String() != "2026-12-31" {
		t.Errorf("expected target date 2026-12-31, got %s", got.TargetDate)
	}
}

func TestCollection_CorruptBlobStartsEmpty(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	testutil.AssertNoError(t, s.Save(ctx, KeyGoals, []byte("{not json")))

	c := Open(ctx, s, KeyGoals, goalKey)
	if c.Len() != 0 {
		t.Errorf("expected empty collection, got %d items", c.Len())
	}
}

func TestCollection_RollsBackOnSaveFailure(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	seed := Open(ctx, mem, KeyGoals, goalKey)
	existing := testutil.NewTestGoal("1000", testutil.Day("2026-01-01"), testutil.Day("2026-06-30"))
	testutil.AssertNoError(t, seed.Put(ctx, existing))

	c := Open(ctx, failingStore{mem}, KeyGoals, goalKey)

	t.Run("put_new", func(t *testing.T) {
		g := testutil.NewTestGoal("1000", testutil.Day("2026-01-01"), testutil.Day("2026-06-30"))
		if err := c.Put(ctx, g); err == nil {
			t.Fatal("expected save error")
		}
		if _, ok := c.Get(g.ID); ok {
			t.Error("failed insert should be rolled back")
		}
	})

	t.Run("put_existing", func(t *testing.T) {
		changed := existing
		changed.Name = "Changed"
		if err := c.Put(ctx, changed); err == nil {
			t.Fatal("expected save error")
		}
		got, _ := c.Get(existing.ID)
		if got.Name != existing.Name {
			t.Errorf("failed update should be rolled back, got %s", got.Name)
		}
	})

	t.Run("delete", func(t *testing.T) {
		deleted, err := c.Delete(ctx, existing.ID)
		if err == nil || deleted {
			t.Fatalf("expected failed delete, got deleted=%v err=%v", deleted, err)
		}
		if _, ok := c.Get(existing.ID); !ok {
			t.Error("failed delete should be rolled back")
		}
	})
}

func TestCollection_Replace(t *testing.T) {
	ctx := context.Background()
	c := Open(ctx, store.NewMemory(), KeyGoals, goalKey)
	testutil.AssertNoError(t, c.Put(ctx, testutil.NewTestGoal("1", testutil.Day("2026-01-01"), testutil.Day("2026-02-01"))))

	g := testutil.NewTestGoal("5", testutil.Day("2026-01-01"), testutil.Day("2026-02-01"))
	testutil.AssertNoError(t, c.Replace(ctx, []models.Goal{g}))

	if c.Len() != 1 {
		t.Fatalf("expected 1 item after replace, got %d", c.Len())
	}
	if _, ok := c.Get(g.ID); !ok {
		t.Error("replacement item should be present")
	}
}
