package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	Quantity int `gorm:"not null" json:"quantity"`
	// price copied from the dish at order time; later menu edits must not
	// change historical orders
	UnitPrice int64 `json:"unitPrice"`
	Subtotal  int64 `json:"subtotal"`

	OrderID uint  `gorm:"index;not null" json:"orderId"`
	Order   Order `json:"-"`

	DishID uint `gorm:"not null" json:"dishId"`
	Dish   Dish `json:"-"`
}
