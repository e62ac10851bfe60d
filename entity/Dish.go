package entity

import (
	"gorm.io/gorm"
)

type Dish struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl"`
	Price       int64  `gorm:"not null" json:"price"`

	AverageRating  float64 `json:"averageRating"`
	NumberOfRaters int     `json:"numberOfRaters"`

	CategoryID uint     `gorm:"index" json:"categoryId"`
	Category   Category `json:"-"`

	OrderItems []OrderItem `json:"-"`
	Ratings    []Rating    `json:"-"`
}
