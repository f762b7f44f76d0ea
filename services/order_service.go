package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dinesuite/dinesuite/database"
	"github.com/dinesuite/dinesuite/events"
	"github.com/dinesuite/dinesuite/models"
	"github.com/dinesuite/dinesuite/utils"
)

// OrderService owns the order lifecycle: creation, status transitions and
// billing. Every mutation runs in a transaction together with its change-feed
// row, so concurrent writers are serialized by the database instead of
// clobbering each other.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

type OrderItemInput struct {
	MenuItemID uint   `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
	Notes      string `json:"notes"`
}

type CreateOrderInput struct {
	BranchID    uint             `json:"branch_id" binding:"required"`
	TableNumber string           `json:"table_number"`
	GuestName   string           `json:"guest_name" binding:"required"`
	GuestPhone  string           `json:"guest_phone"`
	Notes       string           `json:"notes"`
	Items       []OrderItemInput `json:"items" binding:"required,dive"`
}

// Create builds a new pending order. The total is the sum of price*quantity
// over the items, rounded to the cent, and stays fixed for the order's life.
func (s *OrderService) Create(in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var branch models.Branch
		if err := tx.First(&branch, in.BranchID).Error; err != nil {
			return err
		}

		now := time.Now()
		order = models.Order{
			Reference:   uuid.NewString(),
			BranchID:    branch.ID,
			TableNumber: in.TableNumber,
			GuestName:   in.GuestName,
			GuestPhone:  in.GuestPhone,
			Status:      models.OrderPending,
			Notes:       in.Notes,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var total float64
		for _, item := range in.Items {
			var menuItem models.MenuItem
			if err := tx.Where("id = ? AND branch_id = ?", item.MenuItemID, branch.ID).
				First(&menuItem).Error; err != nil {
				return fmt.Errorf("menu item %d: %w", item.MenuItemID, err)
			}

			line := utils.RoundCents(menuItem.Price * float64(item.Quantity))
			total = utils.RoundCents(total + line)

			orderItem := models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: menuItem.ID,
				Name:       menuItem.Name,
				Quantity:   item.Quantity,
				Price:      menuItem.Price,
				Notes:      item.Notes,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, orderItem)
		}

		order.Total = total
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		return database.RecordChange(tx, "orders", order.ID, database.ActionInsert)
	})
	if err != nil {
		return nil, err
	}

	events.BroadcastOrderCreate(order)
	return &order, nil
}

// UpdateStatus applies one step of the order lifecycle. The order is
// re-read under a row lock inside the transaction so a concurrent writer
// cannot slip a transition in between read and write.
func (s *OrderService) UpdateStatus(id uint, to models.OrderStatus) (*models.Order, error) {
	if !to.Valid() {
		return nil, ErrUnknownStatus
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").First(&order, id).Error; err != nil {
			return err
		}

		if !order.Status.CanTransition(to) {
			return &IllegalTransitionError{
				Entity: "order",
				From:   string(order.Status),
				To:     string(to),
			}
		}

		order.Status = to
		order.UpdatedAt = time.Now()
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		return database.RecordChange(tx, "orders", order.ID, database.ActionUpdate)
	})
	if err != nil {
		return nil, err
	}

	events.BroadcastOrderUpdate(order)
	return &order, nil
}

// MarkBilled flags a completed order as billed. Billing is idempotent:
// billing an already-billed order succeeds and keeps the original BilledAt.
func (s *OrderService) MarkBilled(id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").First(&order, id).Error; err != nil {
			return err
		}

		if order.Billed {
			return nil
		}
		if order.Status != models.OrderCompleted {
			return ErrNotBillable
		}

		now := time.Now()
		order.Billed = true
		order.BilledAt = &now
		order.UpdatedAt = now
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		return database.RecordChange(tx, "orders", order.ID, database.ActionUpdate)
	})
	if err != nil {
		return nil, err
	}

	events.BroadcastOrderUpdate(order)
	return &order, nil
}

// ByID loads one order with its items.
func (s *OrderService) ByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ByReference loads one order by its guest-facing reference code.
func (s *OrderService) ByReference(reference string) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").
		Where("reference = ?", reference).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ByBranch returns the branch's orders, newest first. branchID zero returns
// every branch (owner overview).
func (s *OrderService) ByBranch(branchID uint) ([]models.Order, error) {
	query := s.db.Preload("Items").Order("created_at desc")
	if branchID != 0 {
		query = query.Where("branch_id = ?", branchID)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ByTable returns a branch's orders for one table, newest first.
func (s *OrderService) ByTable(branchID uint, tableNumber string) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Preload("Items").
		Where("branch_id = ? AND table_number = ?", branchID, tableNumber).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Pending returns pending orders, optionally scoped to a branch.
func (s *OrderService) Pending(branchID uint) ([]models.Order, error) {
	query := s.db.Preload("Items").
		Where("status = ?", models.OrderPending).
		Order("created_at desc")
	if branchID != 0 {
		query = query.Where("branch_id = ?", branchID)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CompletedUnbilled returns completed orders awaiting a bill for a branch,
// optionally narrowed to one table.
func (s *OrderService) CompletedUnbilled(branchID uint, tableNumber string) ([]models.Order, error) {
	query := s.db.Preload("Items").
		Where("branch_id = ? AND status = ? AND billed = ?", branchID, models.OrderCompleted, false).
		Order("created_at desc")
	if tableNumber != "" {
		query = query.Where("table_number = ?", tableNumber)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
