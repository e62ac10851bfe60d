package repository

import (
	"time"

	"backend/entity"

	"gorm.io/gorm"
)

type ReservationRepository struct {
	DB *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

func (r *ReservationRepository) Create(tx *gorm.DB, res *entity.Reservation) error {
	return tx.Create(res).Error
}

func (r *ReservationRepository) Get(tx *gorm.DB, id uint) (*entity.Reservation, error) {
	var res entity.Reservation
	if err := tx.First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepository) ListForUser(userID uint) ([]entity.Reservation, error) {
	var rows []entity.Reservation
	err := r.DB.Where("user_id = ?", userID).
		Order("reservation_date DESC, reservation_time ASC").
		Find(&rows).Error
	return rows, err
}

func (r *ReservationRepository) ListByDate(date time.Time) ([]entity.Reservation, error) {
	var rows []entity.Reservation
	err := r.DB.Where("reservation_date = ?", entity.DateOnly(date)).
		Order("reservation_time ASC").
		Find(&rows).Error
	return rows, err
}

// ConfirmedInWindow returns confirmed reservations for the date whose time
// lies in [from, to], both ends inclusive.
func (r *ReservationRepository) ConfirmedInWindow(tx *gorm.DB, date time.Time, from, to entity.Clock) ([]entity.Reservation, error) {
	var rows []entity.Reservation
	err := tx.Where(
		"reservation_date = ? AND is_confirmed = ? AND reservation_time >= ? AND reservation_time <= ?",
		entity.DateOnly(date), true, int(from), int(to),
	).Find(&rows).Error
	return rows, err
}

// CountAll is the all-time reservation record count that feeds the dynamic
// capacity ceiling. Cancellations hard-delete rows, so this count shrinks.
func (r *ReservationRepository) CountAll(tx *gorm.DB) (int64, error) {
	var cnt int64
	err := tx.Model(&entity.Reservation{}).Count(&cnt).Error
	return cnt, err
}

// TotalReservedForDate sums party sizes of all confirmed reservations for
// the date, with no time window.
func (r *ReservationRepository) TotalReservedForDate(tx *gorm.DB, date time.Time) (int, error) {
	var total int64
	err := tx.Model(&entity.Reservation{}).
		Where("reservation_date = ? AND is_confirmed = ?", entity.DateOnly(date), true).
		Select("COALESCE(SUM(number_of_places), 0)").
		Scan(&total).Error
	return int(total), err
}

// ConfirmGuard flips is_confirmed false→true. Rows affected is 0 when the
// reservation is absent or already confirmed, so the confirmation reward
// can never fire twice.
func (r *ReservationRepository) ConfirmGuard(tx *gorm.DB, id uint) (int64, error) {
	res := tx.Model(&entity.Reservation{}).
		Where("id = ? AND is_confirmed = ?", id, false).
		Update("is_confirmed", true)
	return res.RowsAffected, res.Error
}

// MarkCouponApplied stores the discount and flips the applied flag, guarded
// so a coupon can hit a reservation at most once.
func (r *ReservationRepository) MarkCouponApplied(tx *gorm.DB, id uint, code string, discount int64) (int64, error) {
	res := tx.Model(&entity.Reservation{}).
		Where("id = ? AND is_coupon_applied = ?", id, false).
		Updates(map[string]any{
			"coupon_code":       code,
			"is_coupon_applied": true,
			"discount_amount":   discount,
		})
	return res.RowsAffected, res.Error
}

// DeleteHard removes the row outright (no soft delete): cancellation
// deliberately reduces CountAll and with it the dynamic ceiling.
func (r *ReservationRepository) DeleteHard(tx *gorm.DB, id uint) error {
	return tx.Unscoped().Delete(&entity.Reservation{}, id).Error
}
