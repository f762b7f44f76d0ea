package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinesuite/dinesuite/models"
	"github.com/dinesuite/dinesuite/services"
	"github.com/dinesuite/dinesuite/utils"
)

type TableController struct {
	DB      *gorm.DB
	Service *services.TableService
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db, Service: services.NewTableService(db)}
}

// CreateTable adds a table to the floor plan (manager).
func (tc *TableController) CreateTable(c *gin.Context) {
	var input services.CreateTableInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Service.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("New table created: %s (branch=%d)", table.Number, table.BranchID)
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

// GetAllTables lists the branch's tables with seating eligibility computed
// for the current time, so the floor view can mark which tables take
// walk-ins.
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Service.ByBranch(staffBranchID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	now := time.Now()
	type tableView struct {
		models.Table
		Seatable bool `json:"seatable"`
	}
	views := make([]tableView, 0, len(tables))
	for _, t := range tables {
		views = append(views, tableView{Table: t, Seatable: services.Seatable(&t, now)})
	}

	utils.RespondJSON(c, http.StatusOK, "List of tables", views)
}

func (tc *TableController) GetTableByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("table_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Service.ByID(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTableStatus applies one lifecycle step to a table.
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("table_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var body struct {
		Status models.TableStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Service.UpdateStatus(uint(id), body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Table %d status changed to %s", table.ID, table.Status)
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

// ReserveTable places a reservation window on a table (receptionist).
func (tc *TableController) ReserveTable(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("table_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var input services.ReserveTableInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Service.Reserve(uint(id), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Table %d reserved for %s", table.ID, table.ReservationName)
	utils.RespondJSON(c, http.StatusOK, "Table reserved", table)
}

// SeatTable seats walk-in guests after the 30-minute reservation check.
func (tc *TableController) SeatTable(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("table_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Service.Seat(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Guests seated", table)
}

// ReleaseTable frees a table when guests leave.
func (tc *TableController) ReleaseTable(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("table_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Service.Release(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table released", table)
}

func (tc *TableController) DeleteTable(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("table_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := tc.Service.Delete(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Table %d deleted", id)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": id})
}
