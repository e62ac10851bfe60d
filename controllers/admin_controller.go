package controllers

import (
	"time"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Reservations *services.ReservationService
	Orders       *services.OrderService
	Coupons      *services.CouponService
}

func NewAdminController(reservations *services.ReservationService, orders *services.OrderService, coupons *services.CouponService) *AdminController {
	return &AdminController{Reservations: reservations, Orders: orders, Coupons: coupons}
}

// GET /admin/dashboard?date=YYYY-MM-DD (defaults to today)
func (ac *AdminController) Dashboard(c *gin.Context) {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			resp.BadRequest(c, "invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}
	status, stats, err := ac.Reservations.DashboardFor(date)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"status": status, "stats": stats})
}

// GET /admin/orders?date=YYYY-MM-DD
func (ac *AdminController) OrdersByDate(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		resp.BadRequest(c, "invalid date, expected YYYY-MM-DD")
		return
	}
	orders, err := ac.Orders.ListForDate(date)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, orders)
}

type mintCouponReq struct {
	Prefix             string    `json:"prefix"`
	DiscountPercentage int       `json:"discountPercentage" binding:"required,min=1,max=100"`
	PointsRequired     int       `json:"pointsRequired" binding:"min=0"`
	ExpiryDate         time.Time `json:"expiryDate" binding:"required"`
}

// POST /admin/coupons
func (ac *AdminController) MintCoupon(c *gin.Context) {
	var req mintCouponReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	coupon, err := ac.Coupons.Mint(req.Prefix, req.DiscountPercentage, req.PointsRequired, req.ExpiryDate)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Created(c, coupon)
}
