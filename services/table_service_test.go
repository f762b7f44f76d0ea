package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinesuite/dinesuite/models"
)

func createTestTable(t *testing.T, svc *TableService) *models.Table {
	t.Helper()

	table, err := svc.Create(CreateTableInput{
		BranchID: 1,
		Number:   "T1",
		Capacity: 4,
		Floor:    1,
	})
	require.NoError(t, err)
	return table
}

func TestCreateTableDefaults(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewTableService(db)

	table := createTestTable(t, svc)
	assert.Equal(t, models.TableAvailable, table.Status)
	assert.Equal(t, 1, table.Floor)
}

func TestSeatableThirtyMinuteBoundary(t *testing.T) {
	now := time.Now()

	soon := now.Add(10 * time.Minute)
	exact := now.Add(30 * time.Minute)
	later := now.Add(45 * time.Minute)

	reservedSoon := &models.Table{Status: models.TableReserved, ReservationStart: &soon}
	reservedExact := &models.Table{Status: models.TableReserved, ReservationStart: &exact}
	reservedLater := &models.Table{Status: models.TableReserved, ReservationStart: &later}

	assert.False(t, Seatable(reservedSoon, now), "reservation 10 minutes out blocks seating")
	assert.False(t, Seatable(reservedExact, now), "reservation exactly 30 minutes out still blocks seating")
	assert.True(t, Seatable(reservedLater, now), "reservation 45 minutes out allows seating")

	assert.True(t, Seatable(&models.Table{Status: models.TableAvailable}, now))
	assert.False(t, Seatable(&models.Table{Status: models.TableOccupied}, now))
	assert.False(t, Seatable(&models.Table{Status: models.TableOutOfService}, now))

	// Reserved with a start already in the past does not block walk-ins.
	past := now.Add(-10 * time.Minute)
	assert.True(t, Seatable(&models.Table{Status: models.TableReserved, ReservationStart: &past}, now))
}

func TestSeatRejectsImminentReservation(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewTableService(db)
	table := createTestTable(t, svc)

	_, err := svc.Reserve(table.ID, ReserveTableInput{
		Name:  "John Smith",
		Start: time.Now().Add(10 * time.Minute),
		End:   time.Now().Add(2 * time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.Seat(table.ID)
	assert.ErrorIs(t, err, ErrNotSeatable)
}

func TestSeatReservedTableWithDistantReservation(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewTableService(db)
	table := createTestTable(t, svc)

	_, err := svc.Reserve(table.ID, ReserveTableInput{
		Name:  "Sarah Johnson",
		Start: time.Now().Add(2 * time.Hour),
		End:   time.Now().Add(4 * time.Hour),
	})
	require.NoError(t, err)

	seated, err := svc.Seat(table.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TableOccupied, seated.Status)
}

func TestReserveConflict(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewTableService(db)
	table := createTestTable(t, svc)

	_, err := svc.Reserve(table.ID, ReserveTableInput{
		Name:  "First Party",
		Start: time.Now().Add(1 * time.Hour),
		End:   time.Now().Add(3 * time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.Reserve(table.ID, ReserveTableInput{
		Name:  "Second Party",
		Start: time.Now().Add(2 * time.Hour),
		End:   time.Now().Add(4 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrReservationConflict)
}

func TestReserveOccupiedTableFails(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewTableService(db)
	table := createTestTable(t, svc)

	_, err := svc.UpdateStatus(table.ID, models.TableOccupied)
	require.NoError(t, err)

	_, err = svc.Reserve(table.ID, ReserveTableInput{
		Name:  "Hopeful Party",
		Start: time.Now().Add(1 * time.Hour),
		End:   time.Now().Add(2 * time.Hour),
	})
	var transition *IllegalTransitionError
	assert.True(t, errors.As(err, &transition))
}

func TestUpdateStatusClearsReservation(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewTableService(db)
	table := createTestTable(t, svc)

	_, err := svc.Reserve(table.ID, ReserveTableInput{
		Name:  "No-show Party",
		Start: time.Now().Add(1 * time.Hour),
		End:   time.Now().Add(2 * time.Hour),
	})
	require.NoError(t, err)

	freed, err := svc.UpdateStatus(table.ID, models.TableAvailable)
	require.NoError(t, err)
	assert.Equal(t, models.TableAvailable, freed.Status)
	assert.Empty(t, freed.ReservationName)
	assert.Nil(t, freed.ReservationStart)
	assert.Nil(t, freed.ReservationEnd)
}

func TestIllegalTableTransitions(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewTableService(db)
	table := createTestTable(t, svc)

	_, err := svc.UpdateStatus(table.ID, models.TableOutOfService)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(table.ID, models.TableOccupied)
	var transition *IllegalTransitionError
	require.True(t, errors.As(err, &transition))
	assert.Equal(t, "out_of_service", transition.From)

	_, err = svc.UpdateStatus(table.ID, "broken")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestReleaseTable(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewTableService(db)
	table := createTestTable(t, svc)

	_, err := svc.UpdateStatus(table.ID, models.TableOccupied)
	require.NoError(t, err)

	released, err := svc.Release(table.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TableAvailable, released.Status)
}

func TestTablesByBranch(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewTableService(db)

	createTestTable(t, svc)
	_, err := svc.Create(CreateTableInput{BranchID: 1, Number: "T2", Capacity: 2, Floor: 2})
	require.NoError(t, err)

	tables, err := svc.ByBranch(1)
	require.NoError(t, err)
	assert.Len(t, tables, 2)
	assert.Equal(t, 1, tables[0].Floor)
	assert.Equal(t, 2, tables[1].Floor)
}
