package models

import (
	"time"
)

// Order is a guest's or staff-entered set of menu line items tied to a table.
// Total is fixed at creation time (sum of price*quantity over the items) and
// is never recomputed afterwards.
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Reference   string      `gorm:"type:varchar(36);uniqueIndex;not null" json:"reference"`
	BranchID    uint        `gorm:"not null;index" json:"branch_id"`
	Branch      Branch      `gorm:"foreignKey:BranchID;references:ID" json:"-"`
	TableNumber string      `gorm:"type:varchar(50)" json:"table_number,omitempty"`
	GuestName   string      `gorm:"type:varchar(255)" json:"guest_name"`
	GuestPhone  string      `gorm:"type:varchar(50)" json:"guest_phone"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Total       float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`
	Notes       string      `gorm:"type:text" json:"notes,omitempty"`
	Billed      bool        `gorm:"not null;default:false" json:"billed"`
	BilledAt    *time.Time  `json:"billed_at,omitempty"`
	CreatedAt   time.Time   `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}
