// Package app wires repositories, the event bus and services over a store.
package app

import (
	"context"
	"time"

	"finfacil/internal/events"
	"finfacil/internal/logger"
	"finfacil/internal/models"
	"finfacil/internal/repository"
	"finfacil/internal/seed"
	"finfacil/internal/services"
	"finfacil/internal/store"
)

// App holds the services shared by the API server and the CLI.
type App struct {
	Goals         *repository.Collection[models.Goal]
	Entries       *repository.Collection[models.GoalEntry]
	Notifications *repository.Collection[models.Notification]

	Bus                 *events.Bus
	GoalService         services.GoalServicer
	NotificationService services.NotificationServicer

	unsubscribe []func()
}

// New loads every collection from s and builds the services. When audit is
// non-nil every published event is also written to the audit log.
func New(ctx context.Context, s store.Store, audit services.AuditServicer) *App {
	a := &App{
		Goals:         repository.Open(ctx, s, repository.KeyGoals, func(g models.Goal) string { return g.ID }),
		Entries:       repository.Open(ctx, s, repository.KeyGoalEntries, func(e models.GoalEntry) string { return e.ID }),
		Notifications: repository.Open(ctx, s, repository.KeyNotifications, func(n models.Notification) string { return n.ID }),
		Bus:           events.NewBus(),
	}

	a.NotificationService = services.NewNotificationService(a.Notifications, a.Bus)
	a.GoalService = services.NewGoalService(a.Goals, a.Entries, a.NotificationService, a.Bus)

	if audit != nil {
		a.unsubscribe = append(a.unsubscribe, services.AuditEvents(a.Bus, audit))
	}
	return a
}

// Seed replaces all data with the fixture at path, or the embedded default
// when path is empty.
func (a *App) Seed(ctx context.Context, path string, now time.Time) error {
	fx, err := seed.Load(path)
	if err != nil {
		return err
	}
	target := seed.Target{Goals: a.Goals, Entries: a.Entries, Notifications: a.Notifications}
	if err := seed.Apply(ctx, fx, target, now); err != nil {
		return err
	}
	logger.Named("seed").Infow("seed data applied",
		"goals", a.Goals.Len(), "entries", a.Entries.Len(), "notifications", a.Notifications.Len())
	return nil
}

// SeedIfEmpty seeds only when no goals, entries or notifications exist.
func (a *App) SeedIfEmpty(ctx context.Context, path string, now time.Time) (bool, error) {
	if a.Goals.Len() > 0 || a.Entries.Len() > 0 || a.Notifications.Len() > 0 {
		return false, nil
	}
	if err := a.Seed(ctx, path, now); err != nil {
		return false, err
	}
	return true, nil
}

// Close detaches the subscribers registered by New.
func (a *App) Close() {
	for _, fn := range a.unsubscribe {
		fn()
	}
	a.unsubscribe = nil
}
