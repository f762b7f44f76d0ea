package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinesuite/dinesuite/models"
	"github.com/dinesuite/dinesuite/services"
	"github.com/dinesuite/dinesuite/utils"
)

type OrderController struct {
	DB      *gorm.DB
	Service *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db, Service: services.NewOrderService(db)}
}

// CreateOrder takes a guest or staff order. No login required; the branch id
// comes from the guest landing flow after short-code lookup.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var input services.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order %s created for branch %d (total=%s)",
		order.Reference, order.BranchID, utils.FormatCurrency(order.Total))
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByReference lets a guest check their order without a login.
func (oc *OrderController) GetOrderByReference(c *gin.Context) {
	order, err := oc.Service.ByReference(c.Param("reference"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetAllOrders lists orders for the staff member's branch, newest first.
// Owners see every branch unless they pass branch_id.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := oc.Service.ByBranch(staffBranchID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.ByID(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetOrdersByTable lists a table's orders for the bill view.
func (oc *OrderController) GetOrdersByTable(c *gin.Context) {
	orders, err := oc.Service.ByTable(staffBranchID(c), c.Param("table_number"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders for table", orders)
}

// GetPendingOrders feeds the kitchen/waiter queue.
func (oc *OrderController) GetPendingOrders(c *gin.Context) {
	orders, err := oc.Service.Pending(staffBranchID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pending orders", orders)
}

// GetCompletedUnbilledOrders lists orders awaiting a bill, optionally for
// one table.
func (oc *OrderController) GetCompletedUnbilledOrders(c *gin.Context) {
	orders, err := oc.Service.CompletedUnbilled(staffBranchID(c), c.Query("table_number"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Completed unbilled orders", orders)
}

// UpdateOrderStatus applies one lifecycle step. Illegal transitions are
// rejected with a conflict.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var body struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.UpdateStatus(uint(id), body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order %d status changed to %s by %s",
		order.ID, order.Status, c.GetString("role"))
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// MarkOrderBilled closes out a completed order.
func (oc *OrderController) MarkOrderBilled(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.MarkBilled(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order %d billed (total=%s)", order.ID, utils.FormatCurrency(order.Total))
	utils.RespondJSON(c, http.StatusOK, "Order billed", order)
}
