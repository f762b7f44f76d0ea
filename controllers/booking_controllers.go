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

type BookingController struct {
	DB      *gorm.DB
	Service *services.BookingService
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{DB: db, Service: services.NewBookingService(db)}
}

// CreateBooking registers a reservation request from the guest landing page.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var input services.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := bc.Service.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Booking %s created for branch %d (%s %s, party of %d)",
		booking.Reference, booking.BranchID, booking.BookingDate, booking.BookingTime, booking.PartySize)
	utils.RespondJSON(c, http.StatusCreated, "Booking created", booking)
}

// GetAllBookings lists the branch's bookings, optionally filtered by status.
func (bc *BookingController) GetAllBookings(c *gin.Context) {
	status := models.BookingStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		respondServiceError(c, services.ErrUnknownStatus)
		return
	}

	bookings, err := bc.Service.ByBranch(staffBranchID(c), status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bookings", bookings)
}

func (bc *BookingController) GetBookingByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("booking_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := bc.Service.ByID(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

// UpdateBookingStatus advances a booking through approval (receptionist,
// manager).
func (bc *BookingController) UpdateBookingStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("booking_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var body struct {
		Status models.BookingStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := bc.Service.UpdateStatus(uint(id), body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Booking %d status changed to %s by %s",
		booking.ID, booking.Status, c.GetString("role"))
	utils.RespondJSON(c, http.StatusOK, "Booking status updated", booking)
}
