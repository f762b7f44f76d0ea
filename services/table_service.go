package services

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dinesuite/dinesuite/database"
	"github.com/dinesuite/dinesuite/events"
	"github.com/dinesuite/dinesuite/models"
)

// seatingBuffer is how close to a reservation start a reserved table stops
// being seatable for walk-ins.
const seatingBuffer = 30 * time.Minute

// TableService owns table status, reservations and seating eligibility.
type TableService struct {
	db *gorm.DB
}

func NewTableService(db *gorm.DB) *TableService {
	return &TableService{db: db}
}

type CreateTableInput struct {
	BranchID uint   `json:"branch_id" binding:"required"`
	Number   string `json:"number" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
	Floor    int    `json:"floor"`
}

func (s *TableService) Create(in CreateTableInput) (*models.Table, error) {
	var table models.Table
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var branch models.Branch
		if err := tx.First(&branch, in.BranchID).Error; err != nil {
			return err
		}

		floor := in.Floor
		if floor == 0 {
			floor = 1
		}
		now := time.Now()
		table = models.Table{
			BranchID:  branch.ID,
			Number:    in.Number,
			Capacity:  in.Capacity,
			Floor:     floor,
			Status:    models.TableAvailable,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(&table).Error; err != nil {
			return err
		}

		return database.RecordChange(tx, "tables", table.ID, database.ActionInsert)
	})
	if err != nil {
		return nil, err
	}

	events.BroadcastTableCreate(table)
	return &table, nil
}

// UpdateStatus applies one step of the table lifecycle. Moving away from
// occupied or reserved clears the reservation window.
func (s *TableService) UpdateStatus(id uint, to models.TableStatus) (*models.Table, error) {
	if !to.Valid() {
		return nil, ErrUnknownStatus
	}

	var table models.Table
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&table, id).Error; err != nil {
			return err
		}

		if !table.Status.CanTransition(to) {
			return &IllegalTransitionError{
				Entity: "table",
				From:   string(table.Status),
				To:     string(to),
			}
		}

		if to == models.TableAvailable || to == models.TableOutOfService {
			table.ReservationName = ""
			table.ReservationStart = nil
			table.ReservationEnd = nil
		}
		table.Status = to
		table.UpdatedAt = time.Now()
		if err := tx.Save(&table).Error; err != nil {
			return err
		}

		return database.RecordChange(tx, "tables", table.ID, database.ActionUpdate)
	})
	if err != nil {
		return nil, err
	}

	events.BroadcastTableUpdate(table)
	return &table, nil
}

type ReserveTableInput struct {
	Name  string    `json:"name" binding:"required"`
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

// Reserve places a reservation window on an available table. A table holds
// at most one active window at a time.
func (s *TableService) Reserve(id uint, in ReserveTableInput) (*models.Table, error) {
	var table models.Table
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&table, id).Error; err != nil {
			return err
		}

		if table.ReservationEnd != nil && table.ReservationEnd.After(time.Now()) {
			return ErrReservationConflict
		}
		if !table.Status.CanTransition(models.TableReserved) {
			return &IllegalTransitionError{
				Entity: "table",
				From:   string(table.Status),
				To:     string(models.TableReserved),
			}
		}

		table.Status = models.TableReserved
		table.ReservationName = in.Name
		table.ReservationStart = &in.Start
		table.ReservationEnd = &in.End
		table.UpdatedAt = time.Now()
		if err := tx.Save(&table).Error; err != nil {
			return err
		}

		return database.RecordChange(tx, "tables", table.ID, database.ActionUpdate)
	})
	if err != nil {
		return nil, err
	}

	events.BroadcastTableUpdate(table)
	return &table, nil
}

// Seatable reports whether walk-in guests can be seated at the table now.
// Available tables always qualify; reserved tables qualify unless the
// reservation starts within the next 30 minutes.
func Seatable(table *models.Table, now time.Time) bool {
	switch table.Status {
	case models.TableAvailable:
		return true
	case models.TableReserved:
		if table.ReservationStart == nil {
			return true
		}
		start := *table.ReservationStart
		soon := !start.Before(now) && !start.After(now.Add(seatingBuffer))
		return !soon
	default:
		return false
	}
}

// Seat marks a table occupied after checking seating eligibility.
func (s *TableService) Seat(id uint) (*models.Table, error) {
	var table models.Table
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&table, id).Error; err != nil {
			return err
		}

		if !Seatable(&table, time.Now()) {
			return ErrNotSeatable
		}

		table.Status = models.TableOccupied
		table.UpdatedAt = time.Now()
		if err := tx.Save(&table).Error; err != nil {
			return err
		}

		return database.RecordChange(tx, "tables", table.ID, database.ActionUpdate)
	})
	if err != nil {
		return nil, err
	}

	events.BroadcastTableUpdate(table)
	return &table, nil
}

// Release frees an occupied table and clears its reservation window.
func (s *TableService) Release(id uint) (*models.Table, error) {
	return s.UpdateStatus(id, models.TableAvailable)
}

func (s *TableService) ByID(id uint) (*models.Table, error) {
	var table models.Table
	if err := s.db.First(&table, id).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

// ByBranch returns a branch's tables ordered by floor and number.
func (s *TableService) ByBranch(branchID uint) ([]models.Table, error) {
	var tables []models.Table
	if err := s.db.Where("branch_id = ?", branchID).
		Order("floor asc, number asc").
		Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

// Delete removes a table (manager floor-plan editing).
func (s *TableService) Delete(id uint) error {
	var table models.Table
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&table, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&table).Error; err != nil {
			return err
		}
		return database.RecordChange(tx, "tables", table.ID, database.ActionDelete)
	})
	if err != nil {
		return err
	}

	events.BroadcastTableDelete(table.BranchID, table.ID)
	return nil
}
