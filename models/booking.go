package models

import "time"

// Booking is a reservation request for a future table sitting, created by the
// guest-facing flow and advanced by staff approval actions.
type Booking struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Reference   string        `gorm:"type:varchar(36);uniqueIndex;not null" json:"reference"`
	BranchID    uint          `gorm:"not null;index" json:"branch_id"`
	Branch      Branch        `gorm:"foreignKey:BranchID;references:ID" json:"-"`
	GuestName   string        `gorm:"type:varchar(255);not null" json:"guest_name"`
	GuestEmail  string        `gorm:"type:varchar(255)" json:"guest_email"`
	GuestPhone  string        `gorm:"type:varchar(50)" json:"guest_phone"`
	BookingDate string        `gorm:"type:varchar(10);not null" json:"booking_date"` // YYYY-MM-DD
	BookingTime string        `gorm:"type:varchar(5);not null" json:"booking_time"`  // HH:MM
	PartySize   int           `gorm:"not null" json:"party_size"`
	Status      BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt   time.Time     `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null" json:"updated_at"`
	Items       []BookingItem `gorm:"foreignKey:BookingID" json:"items"`
}

// BookingItem is a menu item pre-ordered with a booking.
type BookingItem struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	BookingID  uint     `gorm:"not null;index" json:"booking_id"`
	Booking    Booking  `gorm:"foreignKey:BookingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID uint     `gorm:"not null" json:"menu_item_id"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Name       string   `gorm:"type:varchar(255);not null" json:"name"`
	Quantity   int      `gorm:"not null" json:"quantity"`
	Price      float64  `gorm:"type:decimal(10,2);not null" json:"price"`
}
