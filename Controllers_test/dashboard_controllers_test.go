package Controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dinesuite/dinesuite/controllers"
	"github.com/dinesuite/dinesuite/models"
	"github.com/dinesuite/dinesuite/services"
	"github.com/dinesuite/dinesuite/utils"
)

func setupTestDBForDashboard() *gorm.DB {
	db := openControllerDB()
	db.Create(&models.Branch{Name: "Harbor View", ShortCode: "harbor01"})
	db.Create(&models.MenuItem{BranchID: 1, Name: "Margherita", Category: "Pizza", Price: 12.50, Available: true})
	return db
}

func setupDashboardRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	dashboardCtrl := controllers.NewDashboardController(db)

	staff := router.Group("/api", func(c *gin.Context) {
		c.Set("role", models.RoleManager)
		c.Set("branch_id", uint(1))
	})
	staff.GET("/dashboard/stats", dashboardCtrl.GetDashboardStats)
	return router
}

func TestDashboardStatsAggregates(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForDashboard()
	router := setupDashboardRouter(db)

	orderSvc := services.NewOrderService(db)
	order, err := orderSvc.Create(services.CreateOrderInput{
		BranchID:  1,
		GuestName: "Stats Guest",
		Items:     []services.OrderItemInput{{MenuItemID: 1, Quantity: 2}},
	})
	require.NoError(t, err)
	_, err = orderSvc.UpdateStatus(order.ID, models.OrderPreparing)
	require.NoError(t, err)

	tableSvc := services.NewTableService(db)
	_, err = tableSvc.Create(services.CreateTableInput{BranchID: 1, Number: "T1", Capacity: 4})
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/api/dashboard/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total_orders"])
	assert.Equal(t, float64(1), data["today_orders"])
	assert.Equal(t, 25.00, data["today_revenue"])

	orderStats := data["order_stats"].(map[string]interface{})
	assert.Equal(t, float64(1), orderStats["preparing"])
	assert.Equal(t, float64(0), orderStats["pending"])

	tableStats := data["table_stats"].(map[string]interface{})
	assert.Equal(t, float64(1), tableStats["available"])
	assert.Equal(t, float64(1), tableStats["total"])
}

func TestDashboardStatsReportsQueryFailure(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForDashboard()
	router := setupDashboardRouter(db)

	// A broken schema must surface as an error, not as all-zero stats.
	require.NoError(t, db.Migrator().DropTable(&models.Order{}))

	req, _ := http.NewRequest("GET", "/api/dashboard/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
