package models

import (
	"time"
)

// DBChange is one row of the ordered change feed. Services append a row in
// the same transaction as the mutation it records; the change monitor drains
// unprocessed rows in changed-at order and broadcasts them to open views.
type DBChange struct {
	ID         uint      `gorm:"primaryKey"`
	TableName  string    `gorm:"type:varchar(50);not null;index:idx_table_action"`
	RecordID   int64     `gorm:"not null"`
	ActionType string    `gorm:"type:varchar(10);not null;index:idx_table_action"` // INSERT, UPDATE, DELETE
	ChangedAt  time.Time `gorm:"not null"`
	Processed  bool      `gorm:"default:false;index:idx_processed"`
}
