package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinesuite/dinesuite/controllers"
	"github.com/dinesuite/dinesuite/middlewares"
	"github.com/dinesuite/dinesuite/models"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// Registered before the routes; gin snapshots each route's handler
	// chain at registration time.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	userCtrl := controllers.NewUserController(db)
	branchCtrl := controllers.NewBranchController(db)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db)
	tableCtrl := controllers.NewTableController(db)
	bookingCtrl := controllers.NewBookingController(db)
	dashboardCtrl := controllers.NewDashboardController(db)
	billCtrl := controllers.NewBillController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC (GUEST) ROUTES
	// ----------------------------------------------------------------

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/login", userCtrl.Login)
	}

	// Guest landing: resolve a branch from the QR short code, browse its
	// menu, place an order or request a booking.
	r.GET("/branches/:short_code", branchCtrl.GetBranchByCode)
	r.GET("/branches/:short_code/menu", menuCtrl.GetMenuByBranchCode)
	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:reference", orderCtrl.GetOrderByReference)
	r.POST("/bookings", bookingCtrl.CreateBooking)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())

	api.GET("/profile", userCtrl.GetProfile)
	api.POST("/logout", userCtrl.Logout)

	// STAFF ACCOUNTS (owner/manager)
	management := api.Group("/")
	management.Use(middlewares.RequireRoles(models.RoleManager))
	{
		management.POST("/users", userCtrl.Register)
		management.GET("/users", userCtrl.GetAllUsers)
	}

	// BRANCHES (owner)
	ownerOnly := api.Group("/")
	ownerOnly.Use(middlewares.RequireRoles(models.RoleOwner))
	{
		ownerOnly.POST("/branches", branchCtrl.CreateBranch)
		ownerOnly.PATCH("/branches/:branch_id", branchCtrl.UpdateBranch)
	}
	api.GET("/branches", branchCtrl.GetAllBranches)
	api.GET("/branches/:branch_id", branchCtrl.GetBranchByID)

	// MENU (manager)
	menus := api.Group("/")
	menus.Use(middlewares.RequireRoles(models.RoleManager))
	{
		menus.POST("/menu-items", menuCtrl.CreateMenuItem)
		menus.PATCH("/menu-items/:item_id", menuCtrl.UpdateMenuItem)
		menus.DELETE("/menu-items/:item_id", menuCtrl.DeleteMenuItem)
	}
	api.GET("/menu-items", menuCtrl.GetAllMenuItems)

	// ORDERS (all staff of the branch)
	api.GET("/orders", orderCtrl.GetAllOrders)
	api.GET("/orders/pending", orderCtrl.GetPendingOrders)
	api.GET("/orders/unbilled", orderCtrl.GetCompletedUnbilledOrders)
	api.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	api.POST("/orders", orderCtrl.CreateOrder) // staff manual order entry
	api.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	api.POST("/orders/:order_id/bill", orderCtrl.MarkOrderBilled)
	api.GET("/orders/:order_id/bill.pdf", billCtrl.GenerateBill)
	api.GET("/orders/by-table/:table_number", orderCtrl.GetOrdersByTable)

	// TABLES
	floorplan := api.Group("/")
	floorplan.Use(middlewares.RequireRoles(models.RoleManager))
	{
		floorplan.POST("/tables", tableCtrl.CreateTable)
		floorplan.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
	}
	api.GET("/tables", tableCtrl.GetAllTables)
	api.GET("/tables/:table_id", tableCtrl.GetTableByID)
	api.PATCH("/tables/:table_id/status", tableCtrl.UpdateTableStatus)
	api.POST("/tables/:table_id/reserve", tableCtrl.ReserveTable)
	api.POST("/tables/:table_id/seat", tableCtrl.SeatTable)
	api.POST("/tables/:table_id/release", tableCtrl.ReleaseTable)

	// BOOKINGS (receptionist/manager advance them)
	api.GET("/bookings", bookingCtrl.GetAllBookings)
	api.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)
	bookingOps := api.Group("/")
	bookingOps.Use(middlewares.RequireRoles(models.RoleReceptionist, models.RoleManager))
	{
		bookingOps.PATCH("/bookings/:booking_id/status", bookingCtrl.UpdateBookingStatus)
	}

	// DASHBOARD
	api.GET("/dashboard/stats", dashboardCtrl.GetDashboardStats)

	// Live event feed for open dashboard views.
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/events", controllers.EventsHandler)
	}

	return r
}
