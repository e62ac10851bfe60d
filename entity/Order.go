package entity

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	OrderDate      time.Time `gorm:"index" json:"orderDate"`
	TotalAmount    int64     `json:"totalAmount"`
	DiscountAmount int64     `json:"discountAmount"`
	Status         string    `gorm:"not null;default:Pending" json:"status"`
	PaymentMethod  string    `gorm:"not null" json:"paymentMethod"`

	IsCouponApplied bool `gorm:"not null;default:false" json:"isCouponApplied"`

	UserID uint `gorm:"index;not null" json:"userId"`
	User   User `json:"-"`

	// card capture for Online orders; never serialized
	PaymentCardNumber     string `json:"-"`
	PaymentCardHolderName string `json:"-"`
	PaymentCardExpiryDate string `json:"-"`
	PaymentCardCVV        string `json:"-"`

	// preload only on detail
	OrderItems []OrderItem `json:"-"`
}
