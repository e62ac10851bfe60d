package repository

import (
	"time"

	"backend/entity"

	"gorm.io/gorm"
)

type CouponRepository struct {
	DB *gorm.DB
}

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{DB: db}
}

func (r *CouponRepository) Create(coupon *entity.Coupon) error {
	return r.DB.Create(coupon).Error
}

func (r *CouponRepository) GetByCode(tx *gorm.DB, code string) (*entity.Coupon, error) {
	var c entity.Coupon
	if err := tx.Where("code = ?", code).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// AssignGuard claims a pool coupon for a user; rows affected is 0 when the
// coupon is absent or already owned by someone.
func (r *CouponRepository) AssignGuard(tx *gorm.DB, code string, userID uint) (int64, error) {
	res := tx.Model(&entity.Coupon{}).
		Where("code = ? AND user_id IS NULL", code).
		Update("user_id", userID)
	return res.RowsAffected, res.Error
}

// AvailableForPoints lists unassigned, active, unexpired coupons the given
// balance can afford, cheapest first.
func (r *CouponRepository) AvailableForPoints(points int) ([]entity.Coupon, error) {
	var rows []entity.Coupon
	err := r.DB.Where(
		"is_active = ? AND user_id IS NULL AND points_required <= ? AND expiry_date > ?",
		true, points, time.Now(),
	).Order("points_required ASC").Find(&rows).Error
	return rows, err
}

func (r *CouponRepository) ListForUser(userID uint) ([]entity.Coupon, error) {
	var rows []entity.Coupon
	err := r.DB.Where("user_id = ? AND is_active = ?", userID, true).
		Order("id DESC").Find(&rows).Error
	return rows, err
}

// IsValid reports whether the coupon is active, owned by the user and not
// yet expired.
func (r *CouponRepository) IsValid(code string, userID uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.Coupon{}).
		Where("code = ? AND is_active = ? AND user_id = ? AND expiry_date > ?",
			code, true, userID, time.Now()).
		Count(&cnt).Error
	return cnt > 0, err
}
