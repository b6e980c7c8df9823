package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "finfacil/internal/errors"
	"finfacil/internal/events"
	"finfacil/internal/logger"
	"finfacil/internal/models"
	"finfacil/internal/pagination"
	"finfacil/internal/repository"
	"finfacil/internal/uuid"
)

const goalsActionURL = "/dashboard/goals"

// goalService handles goals and their ledgers. All mutations are serialized
// by mu so the entry store, the goal's linked ids and its derived amount
// change together.
type goalService struct {
	mu        sync.Mutex
	goals     repository.Repository[models.Goal]
	entries   repository.Repository[models.GoalEntry]
	notifier  Notifier
	publisher events.Publisher
	now       func() time.Time
	log       *zap.SugaredLogger
}

// NewGoalService creates a new GoalServicer. A nil notifier or publisher
// disables that side channel.
func NewGoalService(
	goals repository.Repository[models.Goal],
	entries repository.Repository[models.GoalEntry],
	notifier Notifier,
	publisher events.Publisher,
) GoalServicer {
	if publisher == nil {
		publisher = events.Discard
	}
	return &goalService{
		goals:     goals,
		entries:   entries,
		notifier:  notifier,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
		log:       logger.Named("goals"),
	}
}

// CreateGoal validates input and stores a new goal with an empty ledger.
func (s *goalService) CreateGoal(ctx context.Context, input CreateGoalInput) (*models.Goal, error) {
	now := s.now()

	goal := models.Goal{
		ID:              uuid.New(),
		Name:            strings.TrimSpace(input.Name),
		Description:     input.Description,
		Type:            input.Type,
		Status:          input.Status,
		TargetAmount:    input.TargetAmount,
		CurrentAmount:   decimal.Zero,
		StartDate:       input.StartDate,
		TargetDate:      input.TargetDate,
		Category:        input.Category,
		IsRecurring:     input.IsRecurring,
		RecurringPeriod: input.RecurringPeriod,
		LinkedEntryIDs:  []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if goal.Status == "" {
		goal.Status = models.GoalStatusNotStarted
	}
	if goal.StartDate.IsZero() {
		goal.StartDate = models.DateOf(now)
	}
	if !goal.IsRecurring {
		goal.RecurringPeriod = ""
	}

	if err := validateGoal(goal); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.goals.Put(ctx, goal); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.log.Infow("goal created", "goal_id", goal.ID, "type", goal.Type, "target", goal.TargetAmount.String())

	if s.notifier != nil {
		err := s.notifier.Notify(ctx, NotificationRequest{
			Type:      models.NotificationTypeGoal,
			Priority:  models.NotificationPriorityMedium,
			Title:     "New goal created",
			Message:   fmt.Sprintf("Your goal %q was created. Target amount: %s", goal.Name, goal.TargetAmount.StringFixed(2)),
			ActionURL: goalsActionURL,
			Metadata: map[string]any{
				"goal_id": goal.ID,
				"amount":  goal.TargetAmount.StringFixed(2),
			},
		})
		if err != nil {
			s.log.Warnw("failed to notify goal creation", "goal_id", goal.ID, "error", err)
		}
	}

	created := goal.Clone()
	s.publisher.Publish(events.Event{Type: events.GoalCreated, GoalID: goal.ID, Goal: &created})

	result := goal.Clone()
	return &result, nil
}

// GetGoals returns a page of goals, newest first, with optional filters.
func (s *goalService) GetGoals(page pagination.PageRequest, filter GoalFilter) (*pagination.PageResponse[models.Goal], error) {
	all := s.goals.List()

	goals := make([]models.Goal, 0, len(all))
	for _, g := range all {
		if filter.Type != nil && g.Type != *filter.Type {
			continue
		}
		if filter.Status != nil && g.Status != *filter.Status {
			continue
		}
		if filter.Active && !g.Status.Active() {
			continue
		}
		goals = append(goals, s.hydrate(g))
	}

	slices.SortStableFunc(goals, func(a, b models.Goal) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})

	result := pagination.Slice(goals, page)
	return &result, nil
}

// GetGoalByID returns a goal with its current amount derived from the ledger.
func (s *goalService) GetGoalByID(goalID string) (*models.Goal, error) {
	g, ok := s.goals.Get(goalID)
	if !ok {
		return nil, apperrors.ErrGoalNotFound
	}
	goal := s.hydrate(g)
	return &goal, nil
}

// UpdateGoal merges the non-nil fields of input into the goal.
func (s *goalService) UpdateGoal(ctx context.Context, goalID string, input UpdateGoalInput) (*models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.goals.Get(goalID)
	if !ok {
		return nil, apperrors.ErrGoalNotFound
	}
	goal := existing.Clone()

	if input.Name != nil {
		goal.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.Type != nil {
		goal.Type = *input.Type
	}
	if input.Status != nil {
		goal.Status = *input.Status
	}
	if input.TargetAmount != nil {
		goal.TargetAmount = *input.TargetAmount
	}
	if input.StartDate != nil {
		goal.StartDate = *input.StartDate
	}
	if input.TargetDate != nil {
		goal.TargetDate = *input.TargetDate
	}
	if input.Category != nil {
		goal.Category = *input.Category
	}
	if input.IsRecurring != nil {
		goal.IsRecurring = *input.IsRecurring
	}
	if input.RecurringPeriod != nil {
		goal.RecurringPeriod = *input.RecurringPeriod
	}
	if !goal.IsRecurring {
		goal.RecurringPeriod = ""
	}

	if err := validateGoal(goal); err != nil {
		return nil, err
	}

	goal.CurrentAmount = s.summarize(goal.ID).Balance
	goal.UpdatedAt = s.now()

	if err := s.goals.Put(ctx, goal); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.log.Infow("goal updated", "goal_id", goal.ID)

	updated := goal.Clone()
	s.publisher.Publish(events.Event{Type: events.GoalUpdated, GoalID: goal.ID, Goal: &updated})

	result := goal.Clone()
	return &result, nil
}

// DeleteGoal removes a goal and every entry in its ledger. It reports false
// when the goal does not exist.
func (s *goalService) DeleteGoal(ctx context.Context, goalID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal, ok := s.goals.Get(goalID)
	if !ok {
		return false, nil
	}

	var removed []string
	for _, e := range s.entriesOf(goalID) {
		if _, err := s.entries.Delete(ctx, e.ID); err != nil {
			s.settlePartialDelete(ctx, goal, removed)
			return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		removed = append(removed, e.ID)
		entry := e
		s.publisher.Publish(events.Event{Type: events.EntryRemoved, GoalID: goalID, EntryID: e.ID, Entry: &entry})
	}

	if _, err := s.goals.Delete(ctx, goalID); err != nil {
		s.settlePartialDelete(ctx, goal, removed)
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.log.Infow("goal deleted", "goal_id", goalID, "entries", len(goal.LinkedEntryIDs))

	deleted := goal.Clone()
	s.publisher.Publish(events.Event{Type: events.GoalDeleted, GoalID: goalID, Goal: &deleted})
	return true, nil
}

// settlePartialDelete keeps a goal consistent with its ledger after a
// cascade delete failed part way: the entries already removed are unlinked
// and the balance and status are recomputed.
func (s *goalService) settlePartialDelete(ctx context.Context, goal models.Goal, removed []string) {
	if len(removed) == 0 {
		return
	}
	g := goal.Clone()
	for _, id := range removed {
		g.UnlinkEntry(id)
	}
	s.refresh(&g, s.now())
	if err := s.goals.Put(ctx, g); err != nil {
		s.log.Errorw("failed to settle goal after partial delete", "goal_id", g.ID, "error", err)
		return
	}
	updated := g.Clone()
	s.publisher.Publish(events.Event{Type: events.GoalUpdated, GoalID: g.ID, Goal: &updated})
}

// AddEntry appends an income or expense to a goal's ledger, recomputes the
// goal's current amount and re-derives its status.
func (s *goalService) AddEntry(
	ctx context.Context,
	goalID string,
	amount decimal.Decimal,
	entryType models.EntryType,
	description string,
) (*models.GoalEntry, error) {
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if !entryType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Entry type must be income or expense")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.goals.Get(goalID)
	if !ok {
		return nil, apperrors.ErrGoalNotFound
	}

	now := s.now()
	entry := models.GoalEntry{
		ID:          uuid.New(),
		GoalID:      goalID,
		Amount:      amount,
		Type:        entryType,
		Description: description,
		Date:        now,
		CreatedAt:   now,
	}

	if err := s.entries.Put(ctx, entry); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	goal := existing.Clone()
	goal.LinkedEntryIDs = append(goal.LinkedEntryIDs, entry.ID)
	s.refresh(&goal, now)

	if err := s.goals.Put(ctx, goal); err != nil {
		if _, rbErr := s.entries.Delete(ctx, entry.ID); rbErr != nil {
			s.log.Errorw("failed to roll back entry", "entry_id", entry.ID, "error", rbErr)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.log.Infow("entry added",
		"goal_id", goalID,
		"entry_id", entry.ID,
		"type", entryType,
		"amount", amount.String(),
		"status", goal.Status,
	)

	published := entry
	g := goal.Clone()
	s.publisher.Publish(events.Event{Type: events.EntryAdded, GoalID: goalID, EntryID: entry.ID, Entry: &published, Goal: &g})

	return &entry, nil
}

// RemoveEntry deletes an entry and updates the goal it belonged to. It
// reports false when the entry does not exist.
func (s *goalService) RemoveEntry(ctx context.Context, entryID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries.Get(entryID)
	if !ok {
		return false, nil
	}

	if _, err := s.entries.Delete(ctx, entryID); err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	ev := events.Event{Type: events.EntryRemoved, GoalID: entry.GoalID, EntryID: entryID, Entry: &entry}

	if existing, ok := s.goals.Get(entry.GoalID); ok {
		goal := existing.Clone()
		goal.UnlinkEntry(entryID)
		s.refresh(&goal, s.now())

		if err := s.goals.Put(ctx, goal); err != nil {
			if rbErr := s.entries.Put(ctx, entry); rbErr != nil {
				s.log.Errorw("failed to restore entry", "entry_id", entryID, "error", rbErr)
			}
			return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		g := goal.Clone()
		ev.Goal = &g
	}

	s.log.Infow("entry removed", "goal_id", entry.GoalID, "entry_id", entryID)
	s.publisher.Publish(ev)
	return true, nil
}

// GetGoalEntries returns a page of a goal's entries, newest first.
func (s *goalService) GetGoalEntries(goalID string, page pagination.PageRequest) (*pagination.PageResponse[models.GoalEntry], error) {
	if _, ok := s.goals.Get(goalID); !ok {
		return nil, apperrors.ErrGoalNotFound
	}

	entries := s.entriesOf(goalID)
	slices.SortStableFunc(entries, func(a, b models.GoalEntry) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})

	result := pagination.Slice(entries, page)
	return &result, nil
}

// Summarize folds a goal's ledger. An unknown goal yields a zero summary.
func (s *goalService) Summarize(goalID string) PotSummary {
	return s.summarize(goalID)
}

// GetProgress returns progress metrics for a goal as of now.
func (s *goalService) GetProgress(goalID string) (*GoalProgress, error) {
	g, ok := s.goals.Get(goalID)
	if !ok {
		return nil, apperrors.ErrGoalNotFound
	}
	summary := s.summarize(goalID)
	g.CurrentAmount = summary.Balance

	progress := ComputeProgress(g, summary, s.now())
	return &progress, nil
}

func (s *goalService) entriesOf(goalID string) []models.GoalEntry {
	var out []models.GoalEntry
	for _, e := range s.entries.List() {
		if e.GoalID == goalID {
			out = append(out, e)
		}
	}
	return out
}

func (s *goalService) summarize(goalID string) PotSummary {
	return SummarizeEntries(goalID, s.entriesOf(goalID))
}

// hydrate returns a copy of g with its current amount taken from the ledger.
func (s *goalService) hydrate(g models.Goal) models.Goal {
	g = g.Clone()
	g.CurrentAmount = s.summarize(g.ID).Balance
	return g
}

// refresh recomputes the goal's current amount and status after its ledger
// changed.
func (s *goalService) refresh(goal *models.Goal, now time.Time) {
	summary := s.summarize(goal.ID)
	goal.CurrentAmount = summary.Balance
	goal.Status = deriveStatus(*goal, summary)
	goal.UpdatedAt = now
}

// deriveStatus applies the ledger-driven status rule: reaching the target
// completes the goal, any other positive balance puts it in progress, and an
// empty or negative balance keeps the current status. At-risk is only ever
// set by the caller; pacing is reported through GoalProgress.
func deriveStatus(goal models.Goal, summary PotSummary) models.GoalStatus {
	balance := summary.Balance
	switch {
	case balance.GreaterThanOrEqual(goal.TargetAmount):
		return models.GoalStatusCompleted
	case balance.IsPositive():
		return models.GoalStatusInProgress
	default:
		return goal.Status
	}
}

func validateGoal(g models.Goal) error {
	switch {
	case g.Name == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Goal name is required")
	case !g.Type.Valid():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid goal type")
	case !g.Status.Valid():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid goal status")
	case !g.TargetAmount.IsPositive():
		return apperrors.WithMessage(apperrors.ErrInvalidAmount, "Target amount must be greater than zero")
	case g.StartDate.IsZero() || g.TargetDate.IsZero():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Start and target dates are required")
	case g.TargetDate.Before(g.StartDate.Time):
		return apperrors.ErrInvalidDateRange
	case g.IsRecurring && !g.RecurringPeriod.Valid():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Recurring goals need a daily, weekly, monthly or yearly period")
	}
	return nil
}
