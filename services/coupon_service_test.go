package services

import (
	"testing"
	"time"

	"backend/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createOrder(t *testing.T, db *gorm.DB, userID uint, total int64) *entity.Order {
	t.Helper()
	o := &entity.Order{
		OrderDate:     time.Now(),
		TotalAmount:   total,
		Status:        entity.OrderStatusPending,
		PaymentMethod: entity.PaymentMethodCash,
		UserID:        userID,
	}
	require.NoError(t, db.Create(o).Error)
	return o
}

func TestApplyCouponToOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := newCouponService(t, db)
	user := createUser(t, db, 100)
	createCoupon(t, db, "SAVE10", 10, 50)
	order := createOrder(t, db, user.ID, 20000) // $200.00

	discount, err := svc.ApplyToOrder(order.ID, "SAVE10")
	require.NoError(t, err)
	assert.EqualValues(t, 2000, discount, "10% of $200 is $20")

	var got entity.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.True(t, got.IsCouponApplied)
	assert.EqualValues(t, 2000, got.DiscountAmount)

	// 100 - 50 cost + 15 reward
	assert.Equal(t, 65, userPoints(t, db, user.ID))
}

// The target lookup must ride the transaction's own connection. With a
// pool capped at one connection, a read through the root pool inside the
// transaction would wait on itself forever.
func TestApplyCouponSingleConnectionPool(t *testing.T) {
	db := setupTestDB(t)
	svc := newCouponService(t, db)
	user := createUser(t, db, 100)
	createCoupon(t, db, "SAVE10", 10, 50)
	order := createOrder(t, db, user.ID, 20000)
	res := &entity.Reservation{
		UserID:          &user.ID,
		CustomerName:    "Diner",
		ReservationDate: entity.DateOnly(testDate),
		ReservationTime: mustClock(t, "18:00"),
		NumberOfPlaces:  4,
		IsConfirmed:     true,
	}
	require.NoError(t, db.Create(res).Error)

	done := make(chan error, 1)
	go func() {
		if _, err := svc.ApplyToOrder(order.ID, "SAVE10"); err != nil {
			done <- err
			return
		}
		_, err := svc.ApplyToReservation(res.ID, "SAVE10")
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("coupon application blocked on the connection pool")
	}
}

func TestApplyCouponToOrderAtMostOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := newCouponService(t, db)
	user := createUser(t, db, 200)
	createCoupon(t, db, "SAVE10", 10, 50)
	order := createOrder(t, db, user.ID, 20000)

	_, err := svc.ApplyToOrder(order.ID, "SAVE10")
	require.NoError(t, err)
	balance := userPoints(t, db, user.ID)

	_, err = svc.ApplyToOrder(order.ID, "SAVE10")
	assert.ErrorIs(t, err, ErrCouponAlreadyApplied)
	assert.Equal(t, balance, userPoints(t, db, user.ID), "a rejected re-apply moves no points")
}

func TestApplyCouponInsufficientPointsRollsBack(t *testing.T) {
	db := setupTestDB(t)
	svc := newCouponService(t, db)
	user := createUser(t, db, 30)
	createCoupon(t, db, "SAVE10", 10, 50)
	order := createOrder(t, db, user.ID, 20000)

	_, err := svc.ApplyToOrder(order.ID, "SAVE10")
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	var got entity.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.False(t, got.IsCouponApplied)
	assert.Zero(t, got.DiscountAmount)
	assert.Equal(t, 30, userPoints(t, db, user.ID))
}

func TestApplyCouponToOrderFailures(t *testing.T) {
	db := setupTestDB(t)
	svc := newCouponService(t, db)
	user := createUser(t, db, 100)
	order := createOrder(t, db, user.ID, 20000)

	_, err := svc.ApplyToOrder(order.ID, "MISSING")
	assert.ErrorIs(t, err, ErrCouponNotFound)

	inactive := createCoupon(t, db, "DEAD", 10, 50)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)
	_, err = svc.ApplyToOrder(order.ID, "DEAD")
	assert.ErrorIs(t, err, ErrCouponInactive)

	_, err = svc.ApplyToOrder(9999, "DEAD")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestApplyCouponToReservation(t *testing.T) {
	db := setupTestDB(t)
	svc := newCouponService(t, db)
	user := createUser(t, db, 100)
	createCoupon(t, db, "SAVE20", 20, 50)

	res := &entity.Reservation{
		UserID:          &user.ID,
		CustomerName:    "Diner",
		ReservationDate: entity.DateOnly(testDate),
		ReservationTime: mustClock(t, "18:00"),
		NumberOfPlaces:  4,
		IsConfirmed:     true,
	}
	require.NoError(t, db.Create(res).Error)

	discount, err := svc.ApplyToReservation(res.ID, "SAVE20")
	require.NoError(t, err)
	// base is $10 per place: 4 places -> $40, 20% -> $8
	assert.EqualValues(t, 800, discount)

	var got entity.Reservation
	require.NoError(t, db.First(&got, res.ID).Error)
	assert.True(t, got.IsCouponApplied)
	assert.Equal(t, "SAVE20", got.CouponCode)
	assert.EqualValues(t, 800, got.DiscountAmount)

	// 100 - 50 cost + 10 reward
	assert.Equal(t, 60, userPoints(t, db, user.ID))

	_, err = svc.ApplyToReservation(res.ID, "SAVE20")
	assert.ErrorIs(t, err, ErrCouponAlreadyApplied)
}

func TestGuestReservationCannotRedeem(t *testing.T) {
	db := setupTestDB(t)
	svc := newCouponService(t, db)
	createCoupon(t, db, "SAVE20", 20, 50)

	res := &entity.Reservation{
		CustomerName:    "Walk In",
		ReservationDate: entity.DateOnly(testDate),
		ReservationTime: mustClock(t, "18:00"),
		NumberOfPlaces:  2,
		IsConfirmed:     true,
	}
	require.NoError(t, db.Create(res).Error)

	_, err := svc.ApplyToReservation(res.ID, "SAVE20")
	assert.ErrorIs(t, err, ErrGuestCannotRedeem)
}

func TestMintCoupon(t *testing.T) {
	db := setupTestDB(t)
	svc := newCouponService(t, db)

	expiry := time.Now().AddDate(0, 1, 0)
	coupon, err := svc.Mint("promo", 15, 40, expiry)
	require.NoError(t, err)
	assert.Contains(t, coupon.Code, "PROMO-")
	assert.Equal(t, 15, coupon.DiscountPercentage)
	assert.True(t, coupon.IsActive)
	assert.Nil(t, coupon.UserID)

	// codes are unique even with the same prefix
	second, err := svc.Mint("promo", 15, 40, expiry)
	require.NoError(t, err)
	assert.NotEqual(t, coupon.Code, second.Code)

	_, err = svc.Mint("x", 0, 10, expiry)
	assert.ErrorIs(t, err, ErrInvalidDiscount)
	_, err = svc.Mint("x", 101, 10, expiry)
	assert.ErrorIs(t, err, ErrInvalidDiscount)
	_, err = svc.Mint("x", 10, -1, expiry)
	assert.ErrorIs(t, err, ErrInvalidPointAmount)
}
