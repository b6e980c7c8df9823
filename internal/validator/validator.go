// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"finfacil/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("goal_type", validateGoalType)
		_ = v.RegisterValidation("goal_status", validateGoalStatus)
		_ = v.RegisterValidation("entry_type", validateEntryType)
		_ = v.RegisterValidation("recurring_period", validateRecurringPeriod)
		_ = v.RegisterValidation("notification_type", validateNotificationType)
		_ = v.RegisterValidation("notification_priority", validateNotificationPriority)
	}
}

func validateGoalType(fl validator.FieldLevel) bool {
	return models.GoalType(fl.Field().String()).Valid()
}

func validateGoalStatus(fl validator.FieldLevel) bool {
	return models.GoalStatus(fl.Field().String()).Valid()
}

func validateEntryType(fl validator.FieldLevel) bool {
	return models.EntryType(fl.Field().String()).Valid()
}

func validateRecurringPeriod(fl validator.FieldLevel) bool {
	return models.RecurringPeriod(fl.Field().String()).Valid()
}

func validateNotificationType(fl validator.FieldLevel) bool {
	return models.NotificationType(fl.Field().String()).Valid()
}

func validateNotificationPriority(fl validator.FieldLevel) bool {
	return models.NotificationPriority(fl.Field().String()).Valid()
}
