package models

import "time"

// MenuItem is a dish or drink on a branch's menu. Orders copy the name and
// price at order time, so later menu edits never change past orders.
type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BranchID    uint      `gorm:"not null;index" json:"branch_id"`
	Branch      Branch    `gorm:"foreignKey:BranchID;references:ID" json:"-"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Category    string    `gorm:"type:varchar(100);index" json:"category"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Available   bool      `gorm:"not null;default:true" json:"available"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
