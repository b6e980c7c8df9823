package services

import (
	"context"

	"github.com/shopspring/decimal"

	"finfacil/internal/models"
	"finfacil/internal/pagination"
)

// GoalFilter holds optional filter parameters for listing goals.
type GoalFilter struct {
	Type   *models.GoalType
	Status *models.GoalStatus
	// Active keeps only in-progress and at-risk goals.
	Active bool
}

// CreateGoalInput carries the caller-supplied fields of a new goal.
// Status defaults to not_started and StartDate to today when left empty.
type CreateGoalInput struct {
	Name            string
	Description     string
	Type            models.GoalType
	Status          models.GoalStatus
	TargetAmount    decimal.Decimal
	StartDate       models.Date
	TargetDate      models.Date
	Category        string
	IsRecurring     bool
	RecurringPeriod models.RecurringPeriod
}

// UpdateGoalInput carries a partial update; nil fields are left unchanged.
// The current amount is not updatable.
type UpdateGoalInput struct {
	Name            *string
	Description     *string
	Type            *models.GoalType
	Status          *models.GoalStatus
	TargetAmount    *decimal.Decimal
	StartDate       *models.Date
	TargetDate      *models.Date
	Category        *string
	IsRecurring     *bool
	RecurringPeriod *models.RecurringPeriod
}

// GoalServicer defines the contract for goal, ledger and progress logic.
type GoalServicer interface {
	CreateGoal(ctx context.Context, input CreateGoalInput) (*models.Goal, error)
	GetGoals(page pagination.PageRequest, filter GoalFilter) (*pagination.PageResponse[models.Goal], error)
	GetGoalByID(goalID string) (*models.Goal, error)
	UpdateGoal(ctx context.Context, goalID string, input UpdateGoalInput) (*models.Goal, error)
	DeleteGoal(ctx context.Context, goalID string) (bool, error)
	AddEntry(ctx context.Context, goalID string, amount decimal.Decimal, entryType models.EntryType, description string) (*models.GoalEntry, error)
	RemoveEntry(ctx context.Context, entryID string) (bool, error)
	GetGoalEntries(goalID string, page pagination.PageRequest) (*pagination.PageResponse[models.GoalEntry], error)
	Summarize(goalID string) PotSummary
	GetProgress(goalID string) (*GoalProgress, error)
}

// NotificationRequest asks for a user-facing notification.
type NotificationRequest struct {
	Type      models.NotificationType
	Priority  models.NotificationPriority
	Title     string
	Message   string
	ActionURL string
	Metadata  map[string]any
}

// Notifier is the side channel the goal service uses to tell the user about
// goal lifecycle changes.
type Notifier interface {
	Notify(ctx context.Context, req NotificationRequest) error
}

// NotificationStats counts notifications overall and per type and priority.
// Every known type and priority is present, zero-filled.
type NotificationStats struct {
	Total      int                                 `json:"total"`
	Unread     int                                 `json:"unread"`
	ByType     map[models.NotificationType]int     `json:"by_type"`
	ByPriority map[models.NotificationPriority]int `json:"by_priority"`
}

// NotificationServicer defines the contract for the notification inbox.
type NotificationServicer interface {
	Notifier
	Create(ctx context.Context, req NotificationRequest) (*models.Notification, error)
	GetNotifications(page pagination.PageRequest, unreadOnly bool) (*pagination.PageResponse[models.Notification], error)
	GetNotificationByID(id string) (*models.Notification, error)
	GetStats() NotificationStats
	MarkAsRead(ctx context.Context, id string) (*models.Notification, error)
	MarkAllAsRead(ctx context.Context) (int, error)
	DeleteNotification(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int, error)
	DeleteRead(ctx context.Context) (int, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID string, changes map[string]interface{})
}
