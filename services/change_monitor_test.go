package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinesuite/dinesuite/database"
	"github.com/dinesuite/dinesuite/models"
)

func TestServiceWritesChangeFeed(t *testing.T) {
	db := setupServiceDB(t)
	orders := NewOrderService(db)

	order := createTestOrder(t, orders, "T1")
	_, err := orders.UpdateStatus(order.ID, models.OrderPreparing)
	require.NoError(t, err)

	var changes []models.DBChange
	require.NoError(t, db.Where("table_name = ?", "orders").
		Order("changed_at ASC").
		Find(&changes).Error)
	require.Len(t, changes, 2)

	assert.Equal(t, database.ActionInsert, changes[0].ActionType)
	assert.Equal(t, database.ActionUpdate, changes[1].ActionType)
	assert.EqualValues(t, order.ID, changes[0].RecordID)
	assert.False(t, changes[0].Processed)
	assert.False(t, changes[0].ChangedAt.After(changes[1].ChangedAt))
}

func TestChangeMonitorDrainsFeedInOrder(t *testing.T) {
	db := setupServiceDB(t)
	orders := NewOrderService(db)
	tables := NewTableService(db)

	createTestOrder(t, orders, "T1")
	_, err := tables.Create(CreateTableInput{BranchID: 1, Number: "T1", Capacity: 2})
	require.NoError(t, err)

	cm := NewChangeMonitor(db)
	cm.checkChanges()

	var unprocessed int64
	db.Model(&models.DBChange{}).Where("processed = ?", false).Count(&unprocessed)
	assert.Zero(t, unprocessed)

	// A second pass finds nothing left to deliver.
	cm.checkChanges()
	var total int64
	db.Model(&models.DBChange{}).Count(&total)
	assert.EqualValues(t, 2, total)
}
