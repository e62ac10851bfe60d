package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type DishRepository struct {
	DB *gorm.DB
}

func NewDishRepository(db *gorm.DB) *DishRepository {
	return &DishRepository{DB: db}
}

func (r *DishRepository) List(categoryID *uint) ([]entity.Dish, error) {
	var rows []entity.Dish
	q := r.DB.Order("id ASC")
	if categoryID != nil && *categoryID != 0 {
		q = q.Where("category_id = ?", *categoryID)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *DishRepository) Get(id uint) (*entity.Dish, error) {
	var d entity.Dish
	if err := r.DB.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// GetBasics loads just what order creation needs to snapshot the price.
func (r *DishRepository) GetBasics(id uint) (*entity.Dish, error) {
	var d entity.Dish
	if err := r.DB.Select("id, price").First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DishRepository) ListCategories() ([]entity.Category, error) {
	var rows []entity.Category
	err := r.DB.Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *DishRepository) CreateRating(tx *gorm.DB, rating *entity.Rating) error {
	return tx.Create(rating).Error
}

// RecomputeRatingAggregate refreshes the dish's cached average and count
// from the ratings table inside the caller's transaction.
func (r *DishRepository) RecomputeRatingAggregate(tx *gorm.DB, dishID uint) error {
	var agg struct {
		Avg float64
		Cnt int64
	}
	if err := tx.Model(&entity.Rating{}).
		Select("COALESCE(AVG(value), 0) AS avg, COUNT(*) AS cnt").
		Where("dish_id = ?", dishID).
		Scan(&agg).Error; err != nil {
		return err
	}
	return tx.Model(&entity.Dish{}).
		Where("id = ?", dishID).
		Updates(map[string]any{
			"average_rating":   agg.Avg,
			"number_of_raters": agg.Cnt,
		}).Error
}
