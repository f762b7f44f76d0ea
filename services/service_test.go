package services

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dinesuite/dinesuite/models"
	"github.com/dinesuite/dinesuite/utils"
)

func init() {
	utils.InitLogger()
}

var testDBCounter int

// setupServiceDB opens a fresh named in-memory database and seeds one branch
// with a small menu. Each call gets its own database.
func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	testDBCounter++
	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Branch{},
		&models.MenuItem{},
		&models.Table{},
		&models.Order{},
		&models.OrderItem{},
		&models.Booking{},
		&models.BookingItem{},
		&models.DBChange{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	branch := models.Branch{Name: "Downtown", ShortCode: "downtown1"}
	if err := db.Create(&branch).Error; err != nil {
		t.Fatalf("failed to seed branch: %v", err)
	}

	menu := []models.MenuItem{
		{BranchID: branch.ID, Name: "Burger", Category: "Mains", Price: 10.00, Available: true},
		{BranchID: branch.ID, Name: "Fries", Category: "Sides", Price: 5.00, Available: true},
		{BranchID: branch.ID, Name: "Espresso", Category: "Drinks", Price: 1.10, Available: true},
	}
	for i := range menu {
		if err := db.Create(&menu[i]).Error; err != nil {
			t.Fatalf("failed to seed menu: %v", err)
		}
	}

	return db
}
