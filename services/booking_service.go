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
)

// BookingService owns the booking approval lifecycle.
type BookingService struct {
	db *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

type CreateBookingInput struct {
	BranchID    uint             `json:"branch_id" binding:"required"`
	GuestName   string           `json:"guest_name" binding:"required"`
	GuestEmail  string           `json:"guest_email" binding:"omitempty,email"`
	GuestPhone  string           `json:"guest_phone"`
	BookingDate string           `json:"booking_date" binding:"required"`
	BookingTime string           `json:"booking_time" binding:"required"`
	PartySize   int              `json:"party_size" binding:"required,gt=0"`
	Items       []OrderItemInput `json:"items" binding:"dive"`
}

// Create registers a new pending booking from the guest-facing flow.
// Requested menu items are optional.
func (s *BookingService) Create(in CreateBookingInput) (*models.Booking, error) {
	if _, err := time.Parse("2006-01-02", in.BookingDate); err != nil {
		return nil, fmt.Errorf("booking date: %w", err)
	}
	if _, err := time.Parse("15:04", in.BookingTime); err != nil {
		return nil, fmt.Errorf("booking time: %w", err)
	}

	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var branch models.Branch
		if err := tx.First(&branch, in.BranchID).Error; err != nil {
			return err
		}

		now := time.Now()
		booking = models.Booking{
			Reference:   uuid.NewString(),
			BranchID:    branch.ID,
			GuestName:   in.GuestName,
			GuestEmail:  in.GuestEmail,
			GuestPhone:  in.GuestPhone,
			BookingDate: in.BookingDate,
			BookingTime: in.BookingTime,
			PartySize:   in.PartySize,
			Status:      models.BookingPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		for _, item := range in.Items {
			var menuItem models.MenuItem
			if err := tx.Where("id = ? AND branch_id = ?", item.MenuItemID, branch.ID).
				First(&menuItem).Error; err != nil {
				return fmt.Errorf("menu item %d: %w", item.MenuItemID, err)
			}

			bookingItem := models.BookingItem{
				BookingID:  booking.ID,
				MenuItemID: menuItem.ID,
				Name:       menuItem.Name,
				Quantity:   item.Quantity,
				Price:      menuItem.Price,
			}
			if err := tx.Create(&bookingItem).Error; err != nil {
				return err
			}
			booking.Items = append(booking.Items, bookingItem)
		}

		return database.RecordChange(tx, "bookings", booking.ID, database.ActionInsert)
	})
	if err != nil {
		return nil, err
	}

	events.BroadcastBookingCreate(booking)
	return &booking, nil
}

// UpdateStatus advances a booking through its approval lifecycle.
func (s *BookingService) UpdateStatus(id uint, to models.BookingStatus) (*models.Booking, error) {
	if !to.Valid() {
		return nil, ErrUnknownStatus
	}

	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").First(&booking, id).Error; err != nil {
			return err
		}

		if !booking.Status.CanTransition(to) {
			return &IllegalTransitionError{
				Entity: "booking",
				From:   string(booking.Status),
				To:     string(to),
			}
		}

		booking.Status = to
		booking.UpdatedAt = time.Now()
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		return database.RecordChange(tx, "bookings", booking.ID, database.ActionUpdate)
	})
	if err != nil {
		return nil, err
	}

	events.BroadcastBookingUpdate(booking)
	return &booking, nil
}

func (s *BookingService) ByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Preload("Items").First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// ByBranch returns a branch's bookings, newest first, optionally filtered by
// status.
func (s *BookingService) ByBranch(branchID uint, status models.BookingStatus) ([]models.Booking, error) {
	query := s.db.Preload("Items").
		Where("branch_id = ?", branchID).
		Order("created_at desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
