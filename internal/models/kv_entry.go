package models

import "time"

// KVEntry is one serialized collection in the key-value table.
type KVEntry struct {
	Key       string    `gorm:"column:name;primaryKey;size:128"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName pins the table name shared with the SQL migrations.
func (KVEntry) TableName() string {
	return "kv_entries"
}
