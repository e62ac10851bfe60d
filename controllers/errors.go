package controllers

import (
	"errors"
	"strconv"
	"time"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

// respondError translates service sentinels into transport responses:
// not-found → 404, conflict/rejected → 409, invalid input → 400, anything
// else is an unexpected storage fault → uniform 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrReservationNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrDishNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCouponNotFound):
		resp.NotFound(c, err.Error())

	case errors.Is(err, services.ErrNoTablesAvailable),
		errors.Is(err, services.ErrCouponAlreadyApplied),
		errors.Is(err, services.ErrCouponAlreadyAssigned),
		errors.Is(err, services.ErrCouponInactive),
		errors.Is(err, services.ErrInsufficientPoints),
		errors.Is(err, services.ErrStatusTransition),
		errors.Is(err, services.ErrStatusConflict),
		errors.Is(err, services.ErrOrderNotPending),
		errors.Is(err, services.ErrEmailTaken):
		resp.Conflict(c, err.Error())

	case errors.Is(err, services.ErrCustomerNameEmpty),
		errors.Is(err, services.ErrInvalidPartySize),
		errors.Is(err, services.ErrInvalidPointAmount),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrGuestCannotRedeem),
		errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidPaymentMethod),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrPaymentNotOnline),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidActivationCode),
		errors.Is(err, services.ErrInvalidDiscount):
		resp.BadRequest(c, err.Error())

	default:
		resp.ServerError(c, err)
	}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}
