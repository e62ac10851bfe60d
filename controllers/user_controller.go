package controllers

import (
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

// GET /user/profile
func (uc *UserController) Profile(c *gin.Context) {
	user, err := uc.Users.Get(utils.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, user)
}

// GET /user/coupons
func (uc *UserController) MyCoupons(c *gin.Context) {
	coupons, err := uc.Users.UserCoupons(utils.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, coupons)
}

// GET /user/coupons/available
func (uc *UserController) AvailableCoupons(c *gin.Context) {
	coupons, err := uc.Users.AvailableCoupons(utils.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, coupons)
}

type assignCouponReq struct {
	Code string `json:"code" binding:"required"`
}

// POST /user/coupons/assign
// Claims a pool coupon, spending the points it costs.
func (uc *UserController) AssignCoupon(c *gin.Context) {
	var req assignCouponReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := uc.Users.AssignCoupon(req.Code, utils.CurrentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	resp.NoContent(c)
}

// GET /user/coupons/:code/valid
func (uc *UserController) CouponValid(c *gin.Context) {
	valid, err := uc.Users.IsCouponValid(c.Param("code"), utils.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"isValid": valid})
}
