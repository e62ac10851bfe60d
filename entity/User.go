package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	FullName string `gorm:"not null" json:"fullName"`
	Role     string `gorm:"not null;default:customer" json:"role"`

	// loyalty balance; mutated only through the ledger (conditional updates)
	Points             int  `gorm:"not null;default:0" json:"points"`
	IsAccountActivated bool `gorm:"not null;default:false" json:"isAccountActivated"`

	ActivationToken string `gorm:"index" json:"-"`

	// Relations; preload only when needed
	Reservations []Reservation `json:"-"`
	Orders       []Order       `json:"-"`
	Coupons      []Coupon      `gorm:"foreignKey:UserID" json:"-"`
	Ratings      []Rating      `json:"-"`
}
