package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinesuite/dinesuite/services"
	"github.com/dinesuite/dinesuite/utils"
)

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var ErrNoPermission = &CustomError{"You do not have permission"}

// respondServiceError maps service-layer failures to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var transition *services.IllegalTransitionError

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.As(err, &transition):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrReservationConflict),
		errors.Is(err, services.ErrNotSeatable),
		errors.Is(err, services.ErrNotBillable):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrUnknownStatus):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
