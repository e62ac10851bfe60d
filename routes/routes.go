package routes

import (
	"backend/controllers"
	"backend/middlewares"
	"backend/ws"

	"github.com/gin-gonic/gin"
)

// Deps carries everything the route table needs. Controllers are built
// upstream so the wiring stays in one place (main).
type Deps struct {
	JWTSecret string

	Auth         *controllers.AuthController
	Users        *controllers.UserController
	Dishes       *controllers.DishController
	Reservations *controllers.ReservationController
	Orders       *controllers.OrderController
	Admin        *controllers.AdminController

	StatusHub *ws.StatusHub
	Limiter   *middlewares.RateLimiter
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	throttle := d.Limiter.Middleware()
	authed := middlewares.AuthMiddleware(d.JWTSecret)
	adminOnly := middlewares.AuthMiddleware(d.JWTSecret, "admin")
	optional := middlewares.OptionalAuth(d.JWTSecret)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", throttle, d.Auth.Register)
		a.POST("/login", throttle, d.Auth.Login)
		a.GET("/activate", d.Auth.Activate)
	}

	// Auth (protected)
	aAuth := a.Group("", authed)
	{
		aAuth.GET("/me", d.Auth.Me)
		aAuth.PATCH("/me", d.Auth.UpdateMe)
	}

	// Menu (public)
	r.GET("/dishes", d.Dishes.List)
	r.GET("/dishes/:id", d.Dishes.Detail)
	r.GET("/categories", d.Dishes.Categories)
	r.POST("/dishes/:id/ratings", authed, throttle, d.Dishes.Rate)

	// Availability and live status (public)
	r.GET("/reservations/availability", d.Reservations.CheckAvailability)
	r.GET("/reservations/table-availability", d.Reservations.TableAvailability)
	r.GET("/reservations/live-status", d.Reservations.LiveStatus)
	r.GET("/reservations/live-status/ws", d.StatusHub.HandleWS)

	// Reservations; creation accepts both guests and logged-in customers
	r.POST("/reservations", throttle, optional, d.Reservations.Create)
	r.GET("/reservations/user", authed, d.Reservations.ListMine)
	r.GET("/reservations/:id", optional, d.Reservations.Detail)
	r.DELETE("/reservations/:id", optional, d.Reservations.Cancel)
	r.POST("/reservations/:id/coupon", authed, throttle, d.Reservations.ApplyCoupon)
	r.PUT("/reservations/:id/confirm", adminOnly, d.Reservations.Confirm)
	r.GET("/reservations/date/:date", adminOnly, d.Reservations.ListByDate)

	// Orders (user)
	u := r.Group("/", authed)
	{
		u.POST("/orders", throttle, d.Orders.Create)
		u.GET("/orders/user", d.Orders.ListMine)
		u.GET("/orders/:id", d.Orders.Detail)
		u.POST("/orders/:id/coupon", throttle, d.Orders.ApplyCoupon)
		u.POST("/orders/:id/payment", throttle, d.Orders.ProcessPayment)
	}
	r.PUT("/orders/:id/status", adminOnly, d.Orders.UpdateStatus)

	// Profile / loyalty
	user := r.Group("/user", authed)
	{
		user.GET("/profile", d.Users.Profile)
		user.GET("/coupons", d.Users.MyCoupons)
		user.GET("/coupons/available", d.Users.AvailableCoupons)
		user.POST("/coupons/assign", throttle, d.Users.AssignCoupon)
		user.GET("/coupons/:code/valid", d.Users.CouponValid)
	}

	// Admin (admin only)
	admin := r.Group("/admin", adminOnly)
	{
		admin.GET("/dashboard", d.Admin.Dashboard)
		admin.GET("/orders", d.Admin.OrdersByDate)
		admin.POST("/coupons", d.Admin.MintCoupon)
	}
}
