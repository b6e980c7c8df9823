// Package seed loads demo goals, entries and notifications from a TOML
// fixture and writes them into the repositories.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"finfacil/internal/models"
	"finfacil/internal/services"
)

//go:embed default.toml
var defaultFixture []byte

// Fixture is the decoded seed file.
type Fixture struct {
	Goals         []GoalFixture         `toml:"goal"`
	Notifications []NotificationFixture `toml:"notification"`
}

// GoalFixture is one goal together with its ledger.
type GoalFixture struct {
	ID              string                 `toml:"id"`
	Name            string                 `toml:"name"`
	Description     string                 `toml:"description"`
	Type            models.GoalType        `toml:"type"`
	Status          models.GoalStatus      `toml:"status"`
	TargetAmount    decimal.Decimal        `toml:"target_amount"`
	StartDate       models.Date            `toml:"start_date"`
	TargetDate      models.Date            `toml:"target_date"`
	Category        string                 `toml:"category"`
	RecurringPeriod models.RecurringPeriod `toml:"recurring_period"`
	Entries         []EntryFixture         `toml:"entry"`
}

// EntryFixture is a ledger entry dated to a calendar day.
type EntryFixture struct {
	ID          string           `toml:"id"`
	Amount      decimal.Decimal  `toml:"amount"`
	Type        models.EntryType `toml:"type"`
	Description string           `toml:"description"`
	Date        models.Date      `toml:"date"`
}

// NotificationFixture is a notification created Age before the seed runs.
type NotificationFixture struct {
	ID        string                      `toml:"id"`
	Type      models.NotificationType     `toml:"type"`
	Priority  models.NotificationPriority `toml:"priority"`
	Title     string                      `toml:"title"`
	Message   string                      `toml:"message"`
	Read      bool                        `toml:"read"`
	Age       time.Duration               `toml:"age"`
	ActionURL string                      `toml:"action_url"`
	Metadata  map[string]any              `toml:"metadata"`
}

// Replacer is a collection whose contents can be listed and swapped
// wholesale.
type Replacer[T any] interface {
	List() []T
	Replace(ctx context.Context, items []T) error
}

// Target is where Apply writes the seeded records.
type Target struct {
	Goals         Replacer[models.Goal]
	Entries       Replacer[models.GoalEntry]
	Notifications Replacer[models.Notification]
}

// Default returns the embedded demo fixture.
func Default() (*Fixture, error) {
	return Parse(defaultFixture)
}

// Load reads a fixture from path, or the embedded default when path is empty.
func Load(path string) (*Fixture, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a TOML fixture.
func Parse(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := toml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	if err := fx.validate(); err != nil {
		return nil, err
	}
	return &fx, nil
}

func (fx *Fixture) validate() error {
	seen := make(map[string]bool)
	for _, g := range fx.Goals {
		if g.ID == "" || strings.TrimSpace(g.Name) == "" {
			return fmt.Errorf("goal %q: id and name are required", g.ID)
		}
		if seen["goal:"+g.ID] {
			return fmt.Errorf("goal %q: duplicate id", g.ID)
		}
		seen["goal:"+g.ID] = true

		if !g.Type.Valid() {
			return fmt.Errorf("goal %q: unknown type %q", g.ID, g.Type)
		}
		if g.Status != "" && !g.Status.Valid() {
			return fmt.Errorf("goal %q: unknown status %q", g.ID, g.Status)
		}
		if g.RecurringPeriod != "" && !g.RecurringPeriod.Valid() {
			return fmt.Errorf("goal %q: unknown recurring period %q", g.ID, g.RecurringPeriod)
		}
		if !g.TargetAmount.IsPositive() {
			return fmt.Errorf("goal %q: target amount must be positive", g.ID)
		}
		if g.StartDate.IsZero() || g.TargetDate.IsZero() {
			return fmt.Errorf("goal %q: start and target dates are required", g.ID)
		}
		if g.TargetDate.Before(g.StartDate.Time) {
			return fmt.Errorf("goal %q: target date is before start date", g.ID)
		}

		for _, e := range g.Entries {
			if e.ID == "" || seen["entry:"+e.ID] {
				return fmt.Errorf("goal %q: entry id %q is missing or duplicated", g.ID, e.ID)
			}
			seen["entry:"+e.ID] = true
			if !e.Amount.IsPositive() {
				return fmt.Errorf("entry %q: amount must be positive", e.ID)
			}
			if !e.Type.Valid() {
				return fmt.Errorf("entry %q: unknown type %q", e.ID, e.Type)
			}
			if e.Date.IsZero() {
				return fmt.Errorf("entry %q: date is required", e.ID)
			}
		}
	}

	for _, n := range fx.Notifications {
		if n.ID == "" || seen["notification:"+n.ID] {
			return fmt.Errorf("notification id %q is missing or duplicated", n.ID)
		}
		seen["notification:"+n.ID] = true
		if !n.Type.Valid() {
			return fmt.Errorf("notification %q: unknown type %q", n.ID, n.Type)
		}
		if n.Priority != "" && !n.Priority.Valid() {
			return fmt.Errorf("notification %q: unknown priority %q", n.ID, n.Priority)
		}
		if strings.TrimSpace(n.Title) == "" {
			return fmt.Errorf("notification %q: title is required", n.ID)
		}
	}
	return nil
}

// Records converts the fixture into models. Goals carry their linked entry
// ids and the balance of their ledger.
func (fx *Fixture) Records(now time.Time) ([]models.Goal, []models.GoalEntry, []models.Notification) {
	goals := make([]models.Goal, 0, len(fx.Goals))
	var entries []models.GoalEntry

	for _, g := range fx.Goals {
		goal := models.Goal{
			ID:              g.ID,
			Name:            g.Name,
			Description:     g.Description,
			Type:            g.Type,
			Status:          g.Status,
			TargetAmount:    g.TargetAmount,
			StartDate:       g.StartDate,
			TargetDate:      g.TargetDate,
			Category:        g.Category,
			IsRecurring:     g.RecurringPeriod != "",
			RecurringPeriod: g.RecurringPeriod,
			LinkedEntryIDs:  []string{},
			CreatedAt:       g.StartDate.Time,
			UpdatedAt:       now,
		}
		if goal.Status == "" {
			goal.Status = models.GoalStatusNotStarted
		}

		ledger := make([]models.GoalEntry, 0, len(g.Entries))
		for _, e := range g.Entries {
			ledger = append(ledger, models.GoalEntry{
				ID:          e.ID,
				GoalID:      g.ID,
				Amount:      e.Amount,
				Type:        e.Type,
				Description: e.Description,
				Date:        e.Date.Time,
				CreatedAt:   e.Date.Time,
			})
			goal.LinkedEntryIDs = append(goal.LinkedEntryIDs, e.ID)
		}
		goal.CurrentAmount = services.SummarizeEntries(g.ID, ledger).Balance

		goals = append(goals, goal)
		entries = append(entries, ledger...)
	}

	notifications := make([]models.Notification, 0, len(fx.Notifications))
	for _, n := range fx.Notifications {
		priority := n.Priority
		if priority == "" {
			priority = models.NotificationPriorityMedium
		}
		notifications = append(notifications, models.Notification{
			ID:        n.ID,
			Type:      n.Type,
			Priority:  priority,
			Title:     n.Title,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: now.Add(-n.Age),
			ActionURL: n.ActionURL,
			Metadata:  n.Metadata,
		})
	}

	return goals, entries, notifications
}

// Apply replaces the contents of every target collection with the fixture.
// When a later collection fails to save, the ones already replaced are put
// back to what they held before.
func Apply(ctx context.Context, fx *Fixture, dst Target, now time.Time) error {
	goals, entries, notifications := fx.Records(now)
	prevEntries := dst.Entries.List()
	prevGoals := dst.Goals.List()

	if err := dst.Entries.Replace(ctx, entries); err != nil {
		return fmt.Errorf("seeding entries: %w", err)
	}
	if err := dst.Goals.Replace(ctx, goals); err != nil {
		return errors.Join(
			fmt.Errorf("seeding goals: %w", err),
			restore(ctx, "entries", dst.Entries, prevEntries),
		)
	}
	if err := dst.Notifications.Replace(ctx, notifications); err != nil {
		return errors.Join(
			fmt.Errorf("seeding notifications: %w", err),
			restore(ctx, "goals", dst.Goals, prevGoals),
			restore(ctx, "entries", dst.Entries, prevEntries),
		)
	}
	return nil
}

func restore[T any](ctx context.Context, name string, dst Replacer[T], items []T) error {
	if err := dst.Replace(ctx, items); err != nil {
		return fmt.Errorf("restoring %s: %w", name, err)
	}
	return nil
}
