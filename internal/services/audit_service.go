package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"finfacil/internal/events"
	"finfacil/internal/logger"
	"finfacil/internal/models"
)

// Audit actions.
const (
	AuditCreateGoal         = "CREATE_GOAL"
	AuditUpdateGoal         = "UPDATE_GOAL"
	AuditDeleteGoal         = "DELETE_GOAL"
	AuditAddEntry           = "ADD_ENTRY"
	AuditRemoveEntry        = "REMOVE_ENTRY"
	AuditCreateNotification = "CREATE_NOTIFICATION"
)

// auditService handles audit log recording.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *auditService) Log(action, resourceType, resourceID string, changes map[string]interface{}) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Changes:      changesJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}

// AuditEvents writes an audit row for every event published on bus until the
// returned function is called.
func AuditEvents(bus events.Subscriber, audit AuditServicer) (unsubscribe func()) {
	return bus.Subscribe(func(e events.Event) {
		switch e.Type {
		case events.GoalCreated, events.GoalUpdated, events.GoalDeleted:
			changes := map[string]interface{}{}
			if e.Goal != nil {
				changes["name"] = e.Goal.Name
				changes["status"] = e.Goal.Status
				changes["target_amount"] = e.Goal.TargetAmount.String()
			}
			audit.Log(goalAction(e.Type), "goal", e.GoalID, changes)
		case events.EntryAdded, events.EntryRemoved:
			changes := map[string]interface{}{"goal_id": e.GoalID}
			if e.Entry != nil {
				changes["type"] = e.Entry.Type
				changes["amount"] = e.Entry.Amount.String()
			}
			action := AuditAddEntry
			if e.Type == events.EntryRemoved {
				action = AuditRemoveEntry
			}
			audit.Log(action, "goal_entry", e.EntryID, changes)
		case events.NotificationCreated:
			if e.Notification == nil {
				return
			}
			audit.Log(AuditCreateNotification, "notification", e.Notification.ID, map[string]interface{}{
				"type":     e.Notification.Type,
				"priority": e.Notification.Priority,
			})
		}
	})
}

func goalAction(t events.Type) string {
	switch t {
	case events.GoalCreated:
		return AuditCreateGoal
	case events.GoalDeleted:
		return AuditDeleteGoal
	default:
		return AuditUpdateGoal
	}
}
