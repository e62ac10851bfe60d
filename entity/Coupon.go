package entity

import (
	"time"

	"gorm.io/gorm"
)

type Coupon struct {
	gorm.Model
	Code               string    `gorm:"size:50;uniqueIndex;not null" json:"code"`
	DiscountPercentage int       `gorm:"not null" json:"discountPercentage"`
	PointsRequired     int       `gorm:"not null" json:"pointsRequired"`
	IsActive           bool      `gorm:"not null;default:true" json:"isActive"`
	ExpiryDate         time.Time `json:"expiryDate"`

	// nil = still in the pool; assignable only while unassigned
	UserID *uint `gorm:"index" json:"userId,omitempty"`
	User   *User `json:"-"`
}
