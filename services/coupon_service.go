package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"backend/entity"
	"backend/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCouponAlreadyApplied = errors.New("coupon already applied")
	ErrGuestCannotRedeem    = errors.New("guest reservations cannot redeem coupons")
	ErrInvalidDiscount      = errors.New("discount percentage must be between 1 and 100")
)

// synthetic price base for reservations: $10 per place, in cents
const reservationBasePerPlace = 1000

// CouponService ties a coupon code to a reservation or an order. The point
// debit, the discount write and the reward credit commit as one unit: if
// the debit fails nothing else is applied.
type CouponService struct {
	DB           *gorm.DB
	Coupons      *repository.CouponRepository
	Users        *repository.UserRepository
	Orders       *repository.OrderRepository
	Reservations *repository.ReservationRepository

	notifier StatusNotifier
}

func NewCouponService(
	db *gorm.DB,
	coupons *repository.CouponRepository,
	users *repository.UserRepository,
	orders *repository.OrderRepository,
	reservations *repository.ReservationRepository,
) *CouponService {
	return &CouponService{DB: db, Coupons: coupons, Users: users, Orders: orders, Reservations: reservations}
}

func (s *CouponService) SetNotifier(n StatusNotifier) { s.notifier = n }

// Mint creates a pool coupon with a unique code derived from the prefix.
func (s *CouponService) Mint(prefix string, discountPct, pointsRequired int, expiry time.Time) (*entity.Coupon, error) {
	if discountPct < 1 || discountPct > 100 {
		return nil, ErrInvalidDiscount
	}
	if pointsRequired < 0 {
		return nil, ErrInvalidPointAmount
	}

	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = "PROMO"
	}
	code := fmt.Sprintf("%s-%s", prefix, strings.ToUpper(uuid.NewString()[:8]))

	coupon := &entity.Coupon{
		Code:               code,
		DiscountPercentage: discountPct,
		PointsRequired:     pointsRequired,
		IsActive:           true,
		ExpiryDate:         expiry,
	}
	if err := s.Coupons.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// resolveCoupon loads and vets the coupon inside the caller's transaction.
func (s *CouponService) resolveCoupon(tx *gorm.DB, code string) (discountPct, pointsRequired int, err error) {
	coupon, err := s.Coupons.GetByCode(tx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, ErrCouponNotFound
		}
		return 0, 0, err
	}
	if !coupon.IsActive {
		return 0, 0, ErrCouponInactive
	}
	return coupon.DiscountPercentage, coupon.PointsRequired, nil
}

// ApplyToOrder redeems a coupon against an order. Returns the discount.
func (s *CouponService) ApplyToOrder(orderID uint, code string) (int64, error) {
	var discount int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := s.Orders.GetOrder(tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.IsCouponApplied {
			return ErrCouponAlreadyApplied
		}

		pct, required, err := s.resolveCoupon(tx, code)
		if err != nil {
			return err
		}

		affected, err := s.Users.UsePoints(tx, order.UserID, required)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInsufficientPoints
		}

		discount = order.TotalAmount * int64(pct) / 100
		affected, err = s.Orders.MarkCouponApplied(tx, orderID, discount)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrCouponAlreadyApplied
		}

		_, err = s.Users.AddPoints(tx, order.UserID, PointsCouponOnOrder)
		return err
	})
	if err != nil {
		return 0, err
	}
	return discount, nil
}

// ApplyToReservation redeems a coupon against a reservation. Reservations
// have no intrinsic price, so the discount is taken from a flat per-place
// base. Guests cannot redeem: there is no balance to debit.
func (s *CouponService) ApplyToReservation(reservationID uint, code string) (int64, error) {
	var discount int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res, err := s.Reservations.Get(tx, reservationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		if res.IsCouponApplied {
			return ErrCouponAlreadyApplied
		}
		if res.UserID == nil {
			return ErrGuestCannotRedeem
		}

		pct, required, err := s.resolveCoupon(tx, code)
		if err != nil {
			return err
		}

		affected, err := s.Users.UsePoints(tx, *res.UserID, required)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInsufficientPoints
		}

		base := int64(res.NumberOfPlaces) * reservationBasePerPlace
		discount = base * int64(pct) / 100
		affected, err = s.Reservations.MarkCouponApplied(tx, reservationID, code, discount)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrCouponAlreadyApplied
		}

		_, err = s.Users.AddPoints(tx, *res.UserID, PointsCouponOnReservation)
		return err
	})
	if err != nil {
		return 0, err
	}

	if s.notifier != nil {
		s.notifier.NotifyStatusChanged()
	}
	return discount, nil
}
