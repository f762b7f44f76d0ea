package models

import "time"

// Branch is one restaurant location of the tenant. ShortCode is what guest
// QR codes resolve; it must stay unique across the whole install.
type Branch struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	ShortCode string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"short_code"`
	Address   string    `gorm:"type:varchar(255)" json:"address,omitempty"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Email     string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
