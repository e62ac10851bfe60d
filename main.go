package main

import (
	"fmt"

	"backend/configs"
	"backend/controllers"
	"backend/middlewares"
	"backend/pkg/logging"
	"backend/repository"
	"backend/routes"
	"backend/services"
	"backend/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	// DB
	db, err := configs.ConnectDB(cfg.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	if err := configs.SetupDatabase(db); err != nil {
		logger.Fatal().Err(err).Msg("migrate database")
	}
	if err := configs.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Fatal().Err(err).Msg("seed admin")
	}
	if err := configs.SeedMenu(db); err != nil {
		logger.Fatal().Err(err).Msg("seed menu")
	}
	if err := configs.SeedCoupons(db); err != nil {
		logger.Fatal().Err(err).Msg("seed coupons")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	dishRepo := repository.NewDishRepository(db)

	// Services
	mailer := services.NewLogMailer(logger)
	authSvc := services.NewAuthService(userRepo, mailer, cfg.JWTSecret, cfg.JWTTTL, cfg.BaseURL)
	userSvc := services.NewUserService(db, userRepo, couponRepo)
	reservationSvc := services.NewReservationService(db, reservationRepo, userRepo)
	orderSvc := services.NewOrderService(db, orderRepo, dishRepo, userRepo)
	couponSvc := services.NewCouponService(db, couponRepo, userRepo, orderRepo, reservationRepo)
	dishSvc := services.NewDishService(db, dishRepo)

	// Live status push: reservation and coupon mutations feed the hub,
	// the hub recomputes the projection on demand.
	statusHub := ws.NewStatusHub(func() (any, error) {
		return reservationSvc.LiveTableStatus(nil)
	}, logger)
	reservationSvc.SetNotifier(statusHub)
	couponSvc.SetNotifier(statusHub)

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))

	routes.RegisterRoutes(r, routes.Deps{
		JWTSecret:    cfg.JWTSecret,
		Auth:         controllers.NewAuthController(authSvc),
		Users:        controllers.NewUserController(userSvc),
		Dishes:       controllers.NewDishController(dishSvc),
		Reservations: controllers.NewReservationController(reservationSvc, couponSvc),
		Orders:       controllers.NewOrderController(orderSvc, couponSvc),
		Admin:        controllers.NewAdminController(reservationSvc, orderSvc, couponSvc),
		StatusHub:    statusHub,
		Limiter:      middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info().Str("addr", addr).Msg("server starting")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
