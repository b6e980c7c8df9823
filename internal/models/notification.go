package models

import (
	"slices"
	"time"
)

// NotificationType groups notifications by the area that raised them
type NotificationType string

const (
	NotificationTypeTransaction NotificationType = "transaction"
	NotificationTypeAccount     NotificationType = "account"
	NotificationTypeInvestment  NotificationType = "investment"
	NotificationTypeRecurring   NotificationType = "recurring"
	NotificationTypeGoal        NotificationType = "goal"
	NotificationTypeAlert       NotificationType = "alert"
	NotificationTypeSystem      NotificationType = "system"
)

// NotificationTypes lists every type in display order.
var NotificationTypes = []NotificationType{
	NotificationTypeTransaction,
	NotificationTypeAccount,
	NotificationTypeInvestment,
	NotificationTypeRecurring,
	NotificationTypeGoal,
	NotificationTypeAlert,
	NotificationTypeSystem,
}

// Valid reports whether t is a known notification type.
func (t NotificationType) Valid() bool {
	return slices.Contains(NotificationTypes, t)
}

// NotificationPriority orders notifications by urgency
type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "low"
	NotificationPriorityMedium NotificationPriority = "medium"
	NotificationPriorityHigh   NotificationPriority = "high"
	NotificationPriorityUrgent NotificationPriority = "urgent"
)

// NotificationPriorities lists every priority from lowest to highest.
var NotificationPriorities = []NotificationPriority{
	NotificationPriorityLow,
	NotificationPriorityMedium,
	NotificationPriorityHigh,
	NotificationPriorityUrgent,
}

// Valid reports whether p is a known priority.
func (p NotificationPriority) Valid() bool {
	return slices.Contains(NotificationPriorities, p)
}

// Notification is a user-facing message shown in the inbox.
type Notification struct {
	ID        string               `json:"id"`
	Type      NotificationType     `json:"type"`
	Priority  NotificationPriority `json:"priority"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Read      bool                 `json:"read"`
	CreatedAt time.Time            `json:"created_at"`
	ActionURL string               `json:"action_url,omitempty"`
	Metadata  map[string]any       `json:"metadata,omitempty"`
}
