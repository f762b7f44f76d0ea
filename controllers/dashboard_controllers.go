package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinesuite/dinesuite/models"
	"github.com/dinesuite/dinesuite/utils"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GetDashboardStats aggregates the numbers the manager overview shows:
// order counts per status, today's volume and revenue, table occupancy and
// pending bookings.
func (dc *DashboardController) GetDashboardStats(c *gin.Context) {
	branchID := staffBranchID(c)
	today := time.Now().Format("2006-01-02")

	var stats struct {
		TotalOrders  int64   `json:"total_orders"`
		TodayOrders  int64   `json:"today_orders"`
		TodayRevenue float64 `json:"today_revenue"`
		OrderStats   struct {
			Pending   int64 `json:"pending"`
			Preparing int64 `json:"preparing"`
			Ready     int64 `json:"ready"`
			Completed int64 `json:"completed"`
			Cancelled int64 `json:"cancelled"`
			Unbilled  int64 `json:"unbilled"`
		} `json:"order_stats"`
		TableStats struct {
			Available    int64 `json:"available"`
			Occupied     int64 `json:"occupied"`
			Reserved     int64 `json:"reserved"`
			OutOfService int64 `json:"out_of_service"`
			Total        int64 `json:"total"`
		} `json:"table_stats"`
		BookingStats struct {
			Pending   int64 `json:"pending"`
			Approved  int64 `json:"approved"`
			Confirmed int64 `json:"confirmed"`
		} `json:"booking_stats"`
	}

	orders := func() *gorm.DB {
		q := dc.DB.Model(&models.Order{})
		if branchID != 0 {
			q = q.Where("branch_id = ?", branchID)
		}
		return q
	}
	tables := func() *gorm.DB {
		q := dc.DB.Model(&models.Table{})
		if branchID != 0 {
			q = q.Where("branch_id = ?", branchID)
		}
		return q
	}
	bookings := func() *gorm.DB {
		q := dc.DB.Model(&models.Booking{})
		if branchID != 0 {
			q = q.Where("branch_id = ?", branchID)
		}
		return q
	}

	if err := orders().Count(&stats.TotalOrders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	orders().Where("DATE(created_at) = ?", today).Count(&stats.TodayOrders)
	if err := orders().Where("DATE(created_at) = ? AND status != ?", today, models.OrderCancelled).
		Select("COALESCE(SUM(total), 0)").Row().Scan(&stats.TodayRevenue); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	orders().Where("status = ?", models.OrderPending).Count(&stats.OrderStats.Pending)
	orders().Where("status = ?", models.OrderPreparing).Count(&stats.OrderStats.Preparing)
	orders().Where("status = ?", models.OrderReady).Count(&stats.OrderStats.Ready)
	orders().Where("status = ?", models.OrderCompleted).Count(&stats.OrderStats.Completed)
	orders().Where("status = ?", models.OrderCancelled).Count(&stats.OrderStats.Cancelled)
	orders().Where("status = ? AND billed = ?", models.OrderCompleted, false).
		Count(&stats.OrderStats.Unbilled)

	if err := tables().Where("status = ?", models.TableAvailable).
		Count(&stats.TableStats.Available).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	tables().Where("status = ?", models.TableOccupied).Count(&stats.TableStats.Occupied)
	tables().Where("status = ?", models.TableReserved).Count(&stats.TableStats.Reserved)
	tables().Where("status = ?", models.TableOutOfService).Count(&stats.TableStats.OutOfService)
	tables().Count(&stats.TableStats.Total)

	if err := bookings().Where("status = ?", models.BookingPending).
		Count(&stats.BookingStats.Pending).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	bookings().Where("status = ?", models.BookingApproved).Count(&stats.BookingStats.Approved)
	bookings().Where("status = ?", models.BookingConfirmed).Count(&stats.BookingStats.Confirmed)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}
