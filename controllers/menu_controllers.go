package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinesuite/dinesuite/models"
	"github.com/dinesuite/dinesuite/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetMenuByBranchCode lists a branch's available menu for guests.
func (mc *MenuController) GetMenuByBranchCode(c *gin.Context) {
	code := c.Param("short_code")

	var branch models.Branch
	if err := mc.DB.Where("short_code = ?", code).First(&branch).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var items []models.MenuItem
	if err := mc.DB.Where("branch_id = ? AND available = ?", branch.ID, true).
		Order("category asc, name asc").
		Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu for branch "+branch.Name, items)
}

// GetAllMenuItems lists a branch's full menu for staff, including items
// currently marked unavailable.
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	branchID := staffBranchID(c)

	var items []models.MenuItem
	if err := mc.DB.Where("branch_id = ?", branchID).
		Order("category asc, name asc").
		Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// CreateMenuItem adds a dish to the branch menu (manager).
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var req struct {
		BranchID    uint    `json:"branch_id" binding:"required"`
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Price       float64 `json:"price" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.MenuItem{
		BranchID:    req.BranchID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       utils.RoundCents(req.Price),
		Available:   true,
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu item created: %s (branch=%d)", item.Name, item.BranchID)
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// UpdateMenuItem edits a dish. Price changes do not touch existing orders,
// which keep the price captured at order time.
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.First(&item, c.Param("item_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Category    *string  `json:"category"`
		Price       *float64 `json:"price"`
		Available   *bool    `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Price != nil {
		item.Price = utils.RoundCents(*req.Price)
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.First(&item, c.Param("item_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := mc.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"id": item.ID})
}
