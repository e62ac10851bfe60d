package entity

import (
	"time"

	"gorm.io/gorm"
)

type Reservation struct {
	gorm.Model
	// nil UserID = guest reservation
	UserID *uint `json:"userId,omitempty"`
	User   *User `json:"-"`

	CustomerName    string    `gorm:"not null" json:"customerName"`
	ReservationDate time.Time `gorm:"index" json:"reservationDate"`
	ReservationTime Clock     `json:"reservationTime"`
	NumberOfPlaces  int       `gorm:"not null" json:"numberOfPlaces"`
	IsConfirmed     bool      `gorm:"not null;default:false" json:"isConfirmed"`

	CouponCode      string `json:"couponCode,omitempty"`
	IsCouponApplied bool   `gorm:"not null;default:false" json:"isCouponApplied"`
	DiscountAmount  int64  `json:"discountAmount"`
}

// DateOnly normalizes a timestamp to its calendar day in UTC so that
// equality queries on reservation_date behave across drivers.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
