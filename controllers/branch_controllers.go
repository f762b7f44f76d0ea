package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinesuite/dinesuite/models"
	"github.com/dinesuite/dinesuite/utils"
)

type BranchController struct {
	DB *gorm.DB
}

func NewBranchController(db *gorm.DB) *BranchController {
	return &BranchController{DB: db}
}

// CreateBranch adds a new location (owner only).
func (bc *BranchController) CreateBranch(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required"`
		ShortCode string `json:"short_code" binding:"required,alphanum"`
		Address   string `json:"address"`
		Phone     string `json:"phone"`
		Email     string `json:"email" binding:"omitempty,email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	branch := models.Branch{
		Name:      req.Name,
		ShortCode: req.ShortCode,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
	}

	if err := bc.DB.Create(&branch).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New branch created: %s (code=%s)", branch.Name, branch.ShortCode)
	utils.RespondJSON(c, http.StatusCreated, "Branch created", branch)
}

// GetAllBranches lists every location of the tenant.
func (bc *BranchController) GetAllBranches(c *gin.Context) {
	var branches []models.Branch
	if err := bc.DB.Order("name asc").Find(&branches).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of branches", branches)
}

// GetBranchByCode resolves a branch from its short code. This is the guest
// landing entry point (QR codes embed the short code).
func (bc *BranchController) GetBranchByCode(c *gin.Context) {
	code := c.Param("short_code")

	var branch models.Branch
	if err := bc.DB.Where("short_code = ?", code).First(&branch).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Branch detail", branch)
}

func (bc *BranchController) GetBranchByID(c *gin.Context) {
	var branch models.Branch
	if err := bc.DB.First(&branch, c.Param("branch_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Branch detail", branch)
}

// UpdateBranch edits location details (owner only).
func (bc *BranchController) UpdateBranch(c *gin.Context) {
	var branch models.Branch
	if err := bc.DB.First(&branch, c.Param("branch_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Address *string `json:"address"`
		Phone   *string `json:"phone"`
		Email   *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.Phone != nil {
		branch.Phone = *req.Phone
	}
	if req.Email != nil {
		branch.Email = *req.Email
	}

	if err := bc.DB.Save(&branch).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Branch updated", branch)
}
