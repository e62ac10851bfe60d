package services

import (
	"testing"
	"time"

	"backend/entity"
	"backend/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single in-memory connection; more would each see an empty schema
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Category{}, &entity.Dish{}, &entity.Rating{},
		&entity.Reservation{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Coupon{},
	))
	return db
}

func newReservationService(t *testing.T, db *gorm.DB) *ReservationService {
	t.Helper()
	return NewReservationService(db, repository.NewReservationRepository(db), repository.NewUserRepository(db))
}

func newUserService(t *testing.T, db *gorm.DB) *UserService {
	t.Helper()
	return NewUserService(db, repository.NewUserRepository(db), repository.NewCouponRepository(db))
}

func newCouponService(t *testing.T, db *gorm.DB) *CouponService {
	t.Helper()
	return NewCouponService(db,
		repository.NewCouponRepository(db),
		repository.NewUserRepository(db),
		repository.NewOrderRepository(db),
		repository.NewReservationRepository(db),
	)
}

func newOrderService(t *testing.T, db *gorm.DB) *OrderService {
	t.Helper()
	return NewOrderService(db,
		repository.NewOrderRepository(db),
		repository.NewDishRepository(db),
		repository.NewUserRepository(db),
	)
}

func createUser(t *testing.T, db *gorm.DB, points int) *entity.User {
	t.Helper()
	u := &entity.User{
		Email:    uuid.NewString() + "@example.com",
		Password: "hashed",
		FullName: "Test User",
		Role:     entity.RoleCustomer,
		Points:   points,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createCoupon(t *testing.T, db *gorm.DB, code string, pct, pointsRequired int) *entity.Coupon {
	t.Helper()
	c := &entity.Coupon{
		Code:               code,
		DiscountPercentage: pct,
		PointsRequired:     pointsRequired,
		IsActive:           true,
		ExpiryDate:         time.Now().AddDate(0, 1, 0),
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func createDish(t *testing.T, db *gorm.DB, name string, price int64) *entity.Dish {
	t.Helper()
	cat := &entity.Category{Name: "Mains " + name}
	require.NoError(t, db.Create(cat).Error)
	d := &entity.Dish{Name: name, Price: price, CategoryID: cat.ID}
	require.NoError(t, db.Create(d).Error)
	return d
}

func mustClock(t *testing.T, s string) entity.Clock {
	t.Helper()
	c, err := entity.ParseClock(s)
	require.NoError(t, err)
	return c
}

func userPoints(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var u entity.User
	require.NoError(t, db.First(&u, id).Error)
	return u.Points
}

var testDate = time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
