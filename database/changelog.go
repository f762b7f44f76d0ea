package database

import (
	"time"

	"github.com/dinesuite/dinesuite/models"
	"gorm.io/gorm"
)

// Change actions recorded in the db_changes feed.
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// RecordChange appends one row to the ordered change feed. It must be called
// with the same transaction handle as the mutation it records, so the change
// row and the mutation commit or roll back together.
func RecordChange(tx *gorm.DB, tableName string, recordID uint, action string) error {
	change := models.DBChange{
		TableName:  tableName,
		RecordID:   int64(recordID),
		ActionType: action,
		ChangedAt:  time.Now(),
		Processed:  false,
	}
	return tx.Create(&change).Error
}
