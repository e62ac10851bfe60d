package controllers

import (
	"strconv"
	"time"

	"backend/entity"
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	Reservations *services.ReservationService
	Coupons      *services.CouponService
}

func NewReservationController(reservations *services.ReservationService, coupons *services.CouponService) *ReservationController {
	return &ReservationController{Reservations: reservations, Coupons: coupons}
}

// ===== Availability =====

// GET /reservations/availability?date=2024-06-01&time=18:00&numberOfPlaces=4
func (rc *ReservationController) CheckAvailability(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		resp.BadRequest(c, "invalid date, expected YYYY-MM-DD")
		return
	}
	t, err := entity.ParseClock(c.Query("time"))
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	places, err := strconv.Atoi(c.Query("numberOfPlaces"))
	if err != nil || places <= 0 {
		resp.BadRequest(c, "numberOfPlaces must be a positive integer")
		return
	}

	available, err := rc.Reservations.CheckAvailability(date, t, places)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"isAvailable": available})
}

// GET /reservations/table-availability?date=2024-06-01&time=18:00
func (rc *ReservationController) TableAvailability(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		resp.BadRequest(c, "invalid date, expected YYYY-MM-DD")
		return
	}
	t, err := entity.ParseClock(c.Query("time"))
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := rc.Reservations.TableAvailability(date, t)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /reservations/live-status?date=2024-06-01 (date optional, default today)
func (rc *ReservationController) LiveStatus(c *gin.Context) {
	var date *time.Time
	if q := c.Query("date"); q != "" {
		d, err := parseDate(q)
		if err != nil {
			resp.BadRequest(c, "invalid date, expected YYYY-MM-DD")
			return
		}
		date = &d
	}

	out, err := rc.Reservations.LiveTableStatus(date)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, out)
}

// ===== Lifecycle =====

type CreateReservationReq struct {
	Name string `json:"name" binding:"required"`
	Date string `json:"date" binding:"required"`
	// no required tag: 00:00 is the Clock zero value and a legal time;
	// malformed values already fail in UnmarshalJSON
	Time           entity.Clock `json:"time"`
	NumberOfPlaces int          `json:"numberOfPlaces" binding:"required,min=1"`
}

// POST /reservations (guests allowed; an authenticated user owns the row)
func (rc *ReservationController) Create(c *gin.Context) {
	var req CreateReservationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		resp.BadRequest(c, "invalid date, expected YYYY-MM-DD")
		return
	}

	var userID *uint
	if uid := utils.CurrentUserID(c); uid != 0 {
		userID = &uid
	}

	res, err := rc.Reservations.Create(&services.CreateReservationReq{
		UserID:          userID,
		CustomerName:    req.Name,
		ReservationDate: date,
		ReservationTime: req.Time,
		NumberOfPlaces:  req.NumberOfPlaces,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Created(c, res)
}

// GET /reservations/:id (owner or admin; guest rows are readable)
func (rc *ReservationController) Detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	res, err := rc.Reservations.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if res.UserID != nil && *res.UserID != utils.CurrentUserID(c) && !utils.IsAdmin(c) {
		resp.Forbidden(c, "forbidden")
		return
	}
	resp.OK(c, res)
}

// GET /reservations/user
func (rc *ReservationController) ListMine(c *gin.Context) {
	rows, err := rc.Reservations.ListForUser(utils.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": rows})
}

// GET /reservations/date/:date (admin)
func (rc *ReservationController) ListByDate(c *gin.Context) {
	date, err := parseDate(c.Param("date"))
	if err != nil {
		resp.BadRequest(c, "invalid date, expected YYYY-MM-DD")
		return
	}
	rows, err := rc.Reservations.ListByDate(date)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": rows})
}

// PUT /reservations/:id/confirm (admin)
func (rc *ReservationController) Confirm(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := rc.Reservations.Confirm(id); err != nil {
		respondError(c, err)
		return
	}
	resp.NoContent(c)
}

// DELETE /reservations/:id (owner or admin)
func (rc *ReservationController) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	res, err := rc.Reservations.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	owner := res.UserID != nil && *res.UserID == utils.CurrentUserID(c)
	if !owner && !utils.IsAdmin(c) {
		resp.Forbidden(c, "forbidden")
		return
	}
	if err := rc.Reservations.Cancel(id); err != nil {
		respondError(c, err)
		return
	}
	resp.NoContent(c)
}

type couponApplyReq struct {
	CouponCode string `json:"couponCode" binding:"required"`
}

// POST /reservations/:id/coupon (owner only)
func (rc *ReservationController) ApplyCoupon(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req couponApplyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	res, err := rc.Reservations.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if res.UserID != nil && *res.UserID != utils.CurrentUserID(c) {
		resp.Forbidden(c, "forbidden")
		return
	}

	discount, err := rc.Coupons.ApplyToReservation(id, req.CouponCode)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"discountAmount": discount})
}
