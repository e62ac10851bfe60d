package entity

import (
	"gorm.io/gorm"
)

type Rating struct {
	gorm.Model
	Value   int    `gorm:"not null" json:"value"` // 1-5
	Comment string `json:"comment"`

	UserID uint `gorm:"index;not null" json:"userId"`
	User   User `json:"-"`

	DishID uint `gorm:"index;not null" json:"dishId"`
	Dish   Dish `json:"-"`
}
