package services

import (
	"errors"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type DishService struct {
	DB   *gorm.DB
	Repo *repository.DishRepository
}

func NewDishService(db *gorm.DB, repo *repository.DishRepository) *DishService {
	return &DishService{DB: db, Repo: repo}
}

func (s *DishService) List(categoryID *uint) ([]entity.Dish, error) {
	return s.Repo.List(categoryID)
}

func (s *DishService) Get(id uint) (*entity.Dish, error) {
	d, err := s.Repo.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDishNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *DishService) Categories() ([]entity.Category, error) {
	return s.Repo.ListCategories()
}

// Rate records a 1-5 rating and refreshes the dish's cached aggregate.
func (s *DishService) Rate(userID, dishID uint, value int, comment string) error {
	if value < 1 || value > 5 {
		return ErrInvalidRating
	}
	if _, err := s.Get(dishID); err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		rating := &entity.Rating{Value: value, Comment: comment, UserID: userID, DishID: dishID}
		if err := s.Repo.CreateRating(tx, rating); err != nil {
			return err
		}
		return s.Repo.RecomputeRatingAggregate(tx, dishID)
	})
}
