package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"gorm.io/gorm"

	"github.com/dinesuite/dinesuite/models"
	"github.com/dinesuite/dinesuite/services"
	"github.com/dinesuite/dinesuite/utils"
)

type BillController struct {
	DB      *gorm.DB
	Service *services.OrderService
}

func NewBillController(db *gorm.DB) *BillController {
	return &BillController{DB: db, Service: services.NewOrderService(db)}
}

// GenerateBill renders a printable PDF bill for a completed order. Billing
// the order (the flag) is a separate action; the bill can be reprinted.
func (bc *BillController) GenerateBill(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := bc.Service.ByID(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if order.Status != models.OrderCompleted {
		respondServiceError(c, services.ErrNotBillable)
		return
	}

	var branch models.Branch
	if err := bc.DB.First(&branch, order.BranchID).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, branch.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, branch.Address, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, branch.Phone, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Order %s", order.Reference), "", 1, "L", false, 0, "")
	if order.TableNumber != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("Table %s", order.TableNumber), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, order.CreatedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(90, 7, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, item := range order.Items {
		amount := utils.RoundCents(item.Price * float64(item.Quantity))
		pdf.CellFormat(90, 7, item.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, strconv.Itoa(item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, utils.FormatCurrency(item.Price), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, utils.FormatCurrency(amount), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(150, 8, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, utils.FormatCurrency(order.Total), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Bill generated for order %d", order.ID)

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=bill-%s.pdf", order.Reference))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
