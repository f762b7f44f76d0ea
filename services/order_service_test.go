package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinesuite/dinesuite/models"
)

func createTestOrder(t *testing.T, svc *OrderService, tableNumber string) *models.Order {
	t.Helper()

	order, err := svc.Create(CreateOrderInput{
		BranchID:    1,
		TableNumber: tableNumber,
		GuestName:   "Walk-in Guest",
		Items: []OrderItemInput{
			{MenuItemID: 1, Quantity: 2}, // Burger 10.00
			{MenuItemID: 2, Quantity: 1}, // Fries 5.00
		},
	})
	require.NoError(t, err)
	return order
}

func TestCreateOrderComputesTotal(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)

	order := createTestOrder(t, svc, "3")

	assert.Equal(t, 25.00, order.Total)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.NotEmpty(t, order.Reference)
	assert.Len(t, order.Items, 2)

	// Re-read from the database; the stored total must match.
	stored, err := svc.ByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 25.00, stored.Total)
}

func TestCreateOrderRoundsToCent(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)

	order, err := svc.Create(CreateOrderInput{
		BranchID:  1,
		GuestName: "Coffee Guest",
		Items: []OrderItemInput{
			{MenuItemID: 3, Quantity: 3}, // Espresso 1.10
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3.30, order.Total)
}

func TestCreateOrderAssignsPendingAndTimestamps(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)

	first := createTestOrder(t, svc, "1")
	second := createTestOrder(t, svc, "2")

	assert.Equal(t, models.OrderPending, first.Status)
	assert.Equal(t, models.OrderPending, second.Status)
	assert.False(t, second.CreatedAt.Before(first.CreatedAt))
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)

	_, err := svc.Create(CreateOrderInput{BranchID: 1, GuestName: "Nobody"})
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestCreateOrderUnknownBranch(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)

	_, err := svc.Create(CreateOrderInput{
		BranchID:  99,
		GuestName: "Lost Guest",
		Items:     []OrderItemInput{{MenuItemID: 1, Quantity: 1}},
	})
	assert.Error(t, err)
}

func TestUpdateOrderStatusLifecycle(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	order := createTestOrder(t, svc, "3")

	for _, next := range []models.OrderStatus{
		models.OrderPreparing,
		models.OrderReady,
		models.OrderCompleted,
	} {
		updated, err := svc.UpdateStatus(order.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}

	// Completed is terminal.
	_, err := svc.UpdateStatus(order.ID, models.OrderPreparing)
	var transition *IllegalTransitionError
	require.True(t, errors.As(err, &transition))
	assert.Equal(t, "completed", transition.From)
	assert.Equal(t, "preparing", transition.To)
}

func TestUpdateOrderStatusSkippingStepFails(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	order := createTestOrder(t, svc, "3")

	_, err := svc.UpdateStatus(order.ID, models.OrderReady)
	var transition *IllegalTransitionError
	assert.True(t, errors.As(err, &transition))
}

func TestCancelOnlyFromPending(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)

	order := createTestOrder(t, svc, "3")
	cancelled, err := svc.UpdateStatus(order.ID, models.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)

	other := createTestOrder(t, svc, "4")
	_, err = svc.UpdateStatus(other.ID, models.OrderPreparing)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(other.ID, models.OrderCancelled)
	var transition *IllegalTransitionError
	assert.True(t, errors.As(err, &transition))
}

func TestCancelledOrderCannotBeResurrected(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	order := createTestOrder(t, svc, "3")

	_, err := svc.UpdateStatus(order.ID, models.OrderCancelled)
	require.NoError(t, err)

	// A second writer that read the order before the cancellation must not
	// be able to push it back into the kitchen queue.
	_, err = svc.UpdateStatus(order.ID, models.OrderPreparing)
	var transition *IllegalTransitionError
	require.True(t, errors.As(err, &transition))
	assert.Equal(t, "cancelled", transition.From)
	assert.Equal(t, "preparing", transition.To)

	stored, err := svc.ByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, stored.Status)
}

func TestUpdateOrderStatusUnknownValue(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	order := createTestOrder(t, svc, "3")

	_, err := svc.UpdateStatus(order.ID, "shipped")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestUpdateOrderStatusTouchesOnlyTarget(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)

	target := createTestOrder(t, svc, "1")
	other := createTestOrder(t, svc, "2")

	_, err := svc.UpdateStatus(target.ID, models.OrderPreparing)
	require.NoError(t, err)

	reloaded, err := svc.ByID(other.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, reloaded.Status)
	assert.Equal(t, other.Total, reloaded.Total)
	assert.Equal(t, other.TableNumber, reloaded.TableNumber)

	reloadedTarget, err := svc.ByID(target.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPreparing, reloadedTarget.Status)
	assert.Equal(t, target.Total, reloadedTarget.Total)
}

func TestMarkBilledRequiresCompleted(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	order := createTestOrder(t, svc, "3")

	_, err := svc.MarkBilled(order.ID)
	assert.ErrorIs(t, err, ErrNotBillable)
}

func TestMarkBilledIdempotent(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)
	order := createTestOrder(t, svc, "3")

	for _, next := range []models.OrderStatus{
		models.OrderPreparing, models.OrderReady, models.OrderCompleted,
	} {
		_, err := svc.UpdateStatus(order.ID, next)
		require.NoError(t, err)
	}

	first, err := svc.MarkBilled(order.ID)
	require.NoError(t, err)
	assert.True(t, first.Billed)
	require.NotNil(t, first.BilledAt)

	second, err := svc.MarkBilled(order.ID)
	require.NoError(t, err)
	assert.True(t, second.Billed)
	require.NotNil(t, second.BilledAt)
	assert.Equal(t, first.BilledAt.Unix(), second.BilledAt.Unix())
}

func TestOrdersByBranchExactSubset(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)

	other := models.Branch{Name: "Uptown", ShortCode: "uptown2"}
	require.NoError(t, db.Create(&other).Error)
	item := models.MenuItem{BranchID: other.ID, Name: "Salad", Price: 7.50, Available: true}
	require.NoError(t, db.Create(&item).Error)

	createTestOrder(t, svc, "1")
	createTestOrder(t, svc, "2")
	_, err := svc.Create(CreateOrderInput{
		BranchID:  other.ID,
		GuestName: "Uptown Guest",
		Items:     []OrderItemInput{{MenuItemID: item.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	downtown, err := svc.ByBranch(1)
	require.NoError(t, err)
	assert.Len(t, downtown, 2)
	for _, o := range downtown {
		assert.Equal(t, uint(1), o.BranchID)
	}

	all, err := svc.ByBranch(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOrdersByTable(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)

	createTestOrder(t, svc, "3")
	createTestOrder(t, svc, "3")
	createTestOrder(t, svc, "5")

	orders, err := svc.ByTable(1, "3")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestCompletedUnbilledOrders(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)

	done := createTestOrder(t, svc, "3")
	createTestOrder(t, svc, "3") // stays pending

	for _, next := range []models.OrderStatus{
		models.OrderPreparing, models.OrderReady, models.OrderCompleted,
	} {
		_, err := svc.UpdateStatus(done.ID, next)
		require.NoError(t, err)
	}

	unbilled, err := svc.CompletedUnbilled(1, "")
	require.NoError(t, err)
	require.Len(t, unbilled, 1)
	assert.Equal(t, done.ID, unbilled[0].ID)

	byTable, err := svc.CompletedUnbilled(1, "3")
	require.NoError(t, err)
	assert.Len(t, byTable, 1)

	empty, err := svc.CompletedUnbilled(1, "9")
	require.NoError(t, err)
	assert.Len(t, empty, 0)

	_, err = svc.MarkBilled(done.ID)
	require.NoError(t, err)

	afterBilling, err := svc.CompletedUnbilled(1, "")
	require.NoError(t, err)
	assert.Len(t, afterBilling, 0)
}

// Full lifecycle scenario: order for table 3 with 2x10.00 + 1x5.00 comes to
// 25.00, runs pending -> preparing -> ready -> completed, then billing. The
// total never changes.
func TestOrderLifecycleScenario(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOrderService(db)

	order := createTestOrder(t, svc, "3")
	assert.Equal(t, 25.00, order.Total)
	assert.Equal(t, models.OrderPending, order.Status)

	for _, next := range []models.OrderStatus{
		models.OrderPreparing, models.OrderReady, models.OrderCompleted,
	} {
		_, err := svc.UpdateStatus(order.ID, next)
		require.NoError(t, err)
	}

	billed, err := svc.MarkBilled(order.ID)
	require.NoError(t, err)
	assert.True(t, billed.Billed)
	assert.Equal(t, 25.00, billed.Total)
}
