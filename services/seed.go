package services

import (
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dinesuite/dinesuite/models"
	"github.com/dinesuite/dinesuite/utils"
)

// SeedOwner creates the first owner account from OWNER_EMAIL/OWNER_PASSWORD.
// Skipped when the variables are unset or the account already exists.
func SeedOwner(db *gorm.DB) error {
	email := os.Getenv("OWNER_EMAIL")
	pass := os.Getenv("OWNER_PASSWORD")
	if email == "" || pass == "" {
		utils.InfoLogger.Println("Skip seeding owner: missing OWNER_EMAIL/OWNER_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	owner := models.User{
		Name:     "Owner",
		Email:    email,
		Password: string(hash),
		Role:     models.RoleOwner,
	}
	if err := db.Create(&owner).Error; err != nil {
		return err
	}
	utils.InfoLogger.Printf("Seeded owner account: %s", email)
	return nil
}

// SeedDemoBookings fills a branch with a few sample reservations so new
// dashboards are not empty. A branch that already has bookings is left alone.
func SeedDemoBookings(db *gorm.DB, branchID uint) error {
	var count int64
	if err := db.Model(&models.Booking{}).
		Where("branch_id = ?", branchID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	today := now.Format("2006-01-02")
	tomorrow := now.AddDate(0, 0, 1).Format("2006-01-02")
	dayAfter := now.AddDate(0, 0, 2).Format("2006-01-02")

	demo := []models.Booking{
		{GuestName: "Alice Johnson", GuestEmail: "alice.j@email.com", GuestPhone: "+1 234 567 8901",
			BookingDate: today, BookingTime: "18:00", PartySize: 4,
			Status: models.BookingPending, CreatedAt: now.Add(-1 * time.Hour)},
		{GuestName: "Bob Smith", GuestEmail: "bob.smith@email.com", GuestPhone: "+1 234 567 8902",
			BookingDate: today, BookingTime: "19:30", PartySize: 2,
			Status: models.BookingPending, CreatedAt: now.Add(-2 * time.Hour)},
		{GuestName: "Carol Williams", GuestEmail: "carol.w@email.com", GuestPhone: "+1 234 567 8903",
			BookingDate: tomorrow, BookingTime: "20:00", PartySize: 6,
			Status: models.BookingApproved, CreatedAt: now.Add(-3 * time.Hour)},
		{GuestName: "David Brown", GuestEmail: "david.b@email.com", GuestPhone: "+1 234 567 8904",
			BookingDate: dayAfter, BookingTime: "18:30", PartySize: 8,
			Status: models.BookingConfirmed, CreatedAt: now.Add(-4 * time.Hour)},
		{GuestName: "Emma Davis", GuestEmail: "emma.d@email.com", GuestPhone: "+1 234 567 8905",
			BookingDate: dayAfter, BookingTime: "19:00", PartySize: 3,
			Status: models.BookingConfirmed, CreatedAt: now.Add(-5 * time.Hour)},
	}

	for i := range demo {
		demo[i].Reference = uuid.NewString()
		demo[i].BranchID = branchID
		demo[i].UpdatedAt = demo[i].CreatedAt
		if err := db.Create(&demo[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
