package services

import (
	"errors"
	"fmt"
)

// Typed failures surfaced by the service layer. Controllers map these to
// HTTP statuses (not found -> 404, conflicts -> 409, bad input -> 400).
var (
	ErrEmptyOrder          = errors.New("order must contain at least one item")
	ErrUnknownStatus       = errors.New("unknown status value")
	ErrNotBillable         = errors.New("order is not completed, cannot be billed")
	ErrNotSeatable         = errors.New("table cannot seat guests right now")
	ErrReservationConflict = errors.New("table already holds an active reservation")
)

// IllegalTransitionError reports a status change the transition table does
// not allow.
type IllegalTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s status cannot change from %q to %q", e.Entity, e.From, e.To)
}
