package models

import "time"

// Staff roles. Owners see every branch of the tenant; the others are tied to
// the branch on their account.
const (
	RoleOwner        = "owner"
	RoleManager      = "manager"
	RoleReceptionist = "receptionist"
	RoleWaiter       = "waiter"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      string    `gorm:"type:varchar(50);not null" json:"role"`
	BranchID  *uint     `gorm:"index" json:"branch_id,omitempty"`
	Branch    *Branch   `gorm:"foreignKey:BranchID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleManager, RoleReceptionist, RoleWaiter:
		return true
	}
	return false
}
