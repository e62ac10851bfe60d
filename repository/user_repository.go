package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&cnt).Error
	return cnt, err
}

func (r *UserRepository) FindByActivationToken(token string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("activation_token = ?", token).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", id).Updates(updates).Error
}

// ---------------- Loyalty ledger primitives ----------------
//
// The balance is never read-then-written. Both mutations are single
// conditional UPDATEs so concurrent credits/debits cannot lose updates.

// AddPoints credits a balance. Returns rows affected (0 = user missing).
func (r *UserRepository) AddPoints(tx *gorm.DB, userID uint, points int) (int64, error) {
	res := tx.Model(&entity.User{}).
		Where("id = ?", userID).
		Update("points", gorm.Expr("points + ?", points))
	return res.RowsAffected, res.Error
}

// UsePoints debits a balance only when it stays non-negative.
// Returns rows affected (0 = user missing or insufficient points).
func (r *UserRepository) UsePoints(tx *gorm.DB, userID uint, points int) (int64, error) {
	res := tx.Model(&entity.User{}).
		Where("id = ? AND points >= ?", userID, points).
		Update("points", gorm.Expr("points - ?", points))
	return res.RowsAffected, res.Error
}
