package models

// AuditLog records every goal, ledger and notification change.
type AuditLog struct {
	Base
	Action       string `gorm:"not null;index" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   string `gorm:"index" json:"resource_id"`
	Changes      string `json:"changes,omitempty"`
}
