package services

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/dinesuite/dinesuite/database"
	"github.com/dinesuite/dinesuite/events"
	"github.com/dinesuite/dinesuite/models"
)

// ChangeMonitor drains the db_changes feed and rebroadcasts each change to
// the connected dashboard views. Rows are processed in changed-at order and
// marked processed in the same transaction, so every change is delivered at
// least once and in order, unlike a single overwritten notification slot.
type ChangeMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewChangeMonitor(db *gorm.DB) *ChangeMonitor {
	return &ChangeMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.checkChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

func (cm *ChangeMonitor) checkChanges() {
	var changes []models.DBChange

	tx := cm.DB.Begin()

	if err := tx.Where("processed = ?", false).
		Order("changed_at ASC").
		Limit(100).
		Find(&changes).Error; err != nil {
		tx.Rollback()
		log.Printf("Error fetching changes: %v", err)
		return
	}

	for _, change := range changes {
		switch change.TableName {
		case "tables":
			cm.processTableChange(change)
		case "orders":
			cm.processOrderChange(change)
		case "bookings":
			cm.processBookingChange(change)
		}

		if err := tx.Model(&models.DBChange{}).
			Where("id = ?", change.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			log.Printf("Error marking change as processed: %v", err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing change batch: %v", err)
		tx.Rollback()
	}
}

func (cm *ChangeMonitor) processTableChange(change models.DBChange) {
	if change.ActionType == database.ActionDelete {
		// Branch is unknown for a deleted row; announce to every view.
		events.BroadcastMessage(events.Message{
			Event: events.EventTableDelete,
			Data:  map[string]interface{}{"table_id": change.RecordID},
		})
		return
	}

	var table models.Table
	if err := cm.DB.First(&table, change.RecordID).Error; err != nil {
		log.Printf("Error fetching table %d: %v", change.RecordID, err)
		return
	}

	if change.ActionType == database.ActionInsert {
		events.BroadcastTableCreate(table)
	} else {
		events.BroadcastTableUpdate(table)
	}
}

func (cm *ChangeMonitor) processOrderChange(change models.DBChange) {
	var order models.Order
	if err := cm.DB.Preload("Items").First(&order, change.RecordID).Error; err != nil {
		log.Printf("Error fetching order %d: %v", change.RecordID, err)
		return
	}

	if change.ActionType == database.ActionInsert {
		events.BroadcastOrderCreate(order)
	} else {
		events.BroadcastOrderUpdate(order)
	}
}

func (cm *ChangeMonitor) processBookingChange(change models.DBChange) {
	var booking models.Booking
	if err := cm.DB.Preload("Items").First(&booking, change.RecordID).Error; err != nil {
		log.Printf("Error fetching booking %d: %v", change.RecordID, err)
		return
	}

	if change.ActionType == database.ActionInsert {
		events.BroadcastBookingCreate(booking)
	} else {
		events.BroadcastBookingUpdate(booking)
	}
}
