package services

import (
	"errors"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidPointAmount    = errors.New("point amount must be positive")
	ErrInsufficientPoints    = errors.New("insufficient points")
	ErrCouponNotFound        = errors.New("coupon not found")
	ErrCouponInactive        = errors.New("coupon is not active")
	ErrCouponAlreadyAssigned = errors.New("coupon already assigned")
)

// UserService is the loyalty ledger: Credit and Debit are the only two
// mutations of a balance anywhere in the system, and both resolve to a
// single conditional UPDATE so concurrent calls cannot lose updates or
// drive a balance negative.
type UserService struct {
	DB      *gorm.DB
	Users   *repository.UserRepository
	Coupons *repository.CouponRepository
}

func NewUserService(db *gorm.DB, users *repository.UserRepository, coupons *repository.CouponRepository) *UserService {
	return &UserService{DB: db, Users: users, Coupons: coupons}
}

func (s *UserService) Get(userID uint) (*entity.User, error) {
	u, err := s.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Credit adds points to the user's balance.
func (s *UserService) Credit(userID uint, points int) error {
	if points <= 0 {
		return ErrInvalidPointAmount
	}
	affected, err := s.Users.AddPoints(s.DB, userID, points)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Debit removes points; the balance never goes negative. A debit that would
// is rejected and the balance is unchanged.
func (s *UserService) Debit(userID uint, points int) error {
	if points <= 0 {
		return ErrInvalidPointAmount
	}
	affected, err := s.Users.UsePoints(s.DB, userID, points)
	if err != nil {
		return err
	}
	if affected == 0 {
		// distinguish a missing user from an insufficient balance
		if _, err := s.Users.FindByID(userID); errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		} else if err != nil {
			return err
		}
		return ErrInsufficientPoints
	}
	return nil
}

// AssignCoupon claims a pool coupon for the user: the debit and the
// ownership change commit together or not at all.
func (s *UserService) AssignCoupon(code string, userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		coupon, err := s.Coupons.GetByCode(tx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCouponNotFound
			}
			return err
		}
		if !coupon.IsActive {
			return ErrCouponInactive
		}
		if coupon.UserID != nil {
			return ErrCouponAlreadyAssigned
		}

		affected, err := s.Users.UsePoints(tx, userID, coupon.PointsRequired)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInsufficientPoints
		}

		affected, err = s.Coupons.AssignGuard(tx, code, userID)
		if err != nil {
			return err
		}
		if affected == 0 {
			// raced with a concurrent claim; roll back the debit too
			return ErrCouponAlreadyAssigned
		}
		return nil
	})
}

// AvailableCoupons lists pool coupons the user's balance can afford.
func (s *UserService) AvailableCoupons(userID uint) ([]entity.Coupon, error) {
	u, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	return s.Coupons.AvailableForPoints(u.Points)
}

func (s *UserService) UserCoupons(userID uint) ([]entity.Coupon, error) {
	return s.Coupons.ListForUser(userID)
}

func (s *UserService) IsCouponValid(code string, userID uint) (bool, error) {
	return s.Coupons.IsValid(code, userID)
}
