package controllers

import (
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Orders  *services.OrderService
	Coupons *services.CouponService
}

func NewOrderController(orders *services.OrderService, coupons *services.CouponService) *OrderController {
	return &OrderController{Orders: orders, Coupons: coupons}
}

// POST /orders
func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := oc.Orders.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Created(c, out)
}

// GET /orders/user
func (oc *OrderController) ListMine(c *gin.Context) {
	items, err := oc.Orders.ListForUser(utils.CurrentUserID(c), 50)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /orders/:id (owner or admin)
func (oc *OrderController) Detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	detail, err := oc.Orders.Detail(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if detail.Order.UserID != utils.CurrentUserID(c) && !utils.IsAdmin(c) {
		resp.Forbidden(c, "forbidden")
		return
	}
	resp.OK(c, detail)
}

type orderStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// PUT /orders/:id/status (admin)
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req orderStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := oc.Orders.UpdateStatus(id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	resp.NoContent(c)
}

// POST /orders/:id/coupon (owner only)
func (oc *OrderController) ApplyCoupon(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req couponApplyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Orders.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if order.UserID != utils.CurrentUserID(c) {
		resp.Forbidden(c, "forbidden")
		return
	}

	discount, err := oc.Coupons.ApplyToOrder(id, req.CouponCode)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"discountAmount": discount})
}

type paymentReq struct {
	CardNumber     string `json:"cardNumber" binding:"required"`
	CardHolderName string `json:"cardHolderName" binding:"required"`
	ExpiryDate     string `json:"expiryDate" binding:"required"`
	CVV            string `json:"cvv" binding:"required"`
}

// POST /orders/:id/payment (owner only)
func (oc *OrderController) ProcessPayment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req paymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Orders.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if order.UserID != utils.CurrentUserID(c) {
		resp.Forbidden(c, "forbidden")
		return
	}

	if err := oc.Orders.ProcessPayment(id, req.CardNumber, req.CardHolderName, req.ExpiryDate, req.CVV); err != nil {
		respondError(c, err)
		return
	}
	resp.NoContent(c)
}
