package models

import "time"

// Table is a physical table at a branch. Reservation fields are only
// meaningful while the table holds a reservation window; a table has at most
// one active window at a time.
type Table struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	BranchID         uint        `gorm:"not null;index" json:"branch_id"`
	Branch           Branch      `gorm:"foreignKey:BranchID;references:ID" json:"-"`
	Number           string      `gorm:"type:varchar(50);not null" json:"number"`
	Capacity         int         `gorm:"not null" json:"capacity"`
	Floor            int         `gorm:"not null;default:1" json:"floor"`
	Status           TableStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	ReservationName  string      `gorm:"type:varchar(255)" json:"reservation_name,omitempty"`
	ReservationStart *time.Time  `json:"reservation_start,omitempty"`
	ReservationEnd   *time.Time  `json:"reservation_end,omitempty"`
	CreatedAt        time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time   `gorm:"not null" json:"updated_at"`
}
