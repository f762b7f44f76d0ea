package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/dinesuite/dinesuite/config"
	"github.com/dinesuite/dinesuite/models"
	"github.com/dinesuite/dinesuite/router"
	"github.com/dinesuite/dinesuite/services"
	"github.com/dinesuite/dinesuite/utils"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()

	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	if err := services.SeedOwner(db); err != nil {
		utils.ErrorLogger.Printf("Error seeding owner account: %v", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		seedDemoData(db)
	}

	// Change monitor feeds the websocket event hub from the db_changes table.
	monitor := services.NewChangeMonitor(db)
	monitor.Interval = 500 * time.Millisecond
	monitor.Start()
	defer monitor.Stop()

	// Drop expired entries from the token blacklist once an hour.
	go func() {
		for {
			time.Sleep(1 * time.Hour)
			utils.CleanupBlacklist()
		}
	}()

	r := router.SetupRouter(db)

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

// seedDemoData fills every branch with sample bookings so a fresh install
// has something to show on the dashboards.
func seedDemoData(db *gorm.DB) {
	var branches []models.Branch
	if err := db.Find(&branches).Error; err != nil {
		utils.ErrorLogger.Printf("Error loading branches for demo seed: %v", err)
		return
	}
	for _, branch := range branches {
		if err := services.SeedDemoBookings(db, branch.ID); err != nil {
			utils.ErrorLogger.Printf("Error seeding demo bookings for branch %d: %v", branch.ID, err)
		}
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
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
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
