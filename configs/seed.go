package configs

import (
	"fmt"
	"strings"
	"time"

	"backend/entity"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the first admin account once. Missing credentials
// disable seeding instead of failing startup.
func SeedAdmin(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Email:              strings.ToLower(email),
		Password:           string(hash),
		FullName:           "Admin",
		Role:               entity.RoleAdmin,
		IsAccountActivated: true,
	}
	return db.Create(&admin).Error
}

// SeedMenu fills an empty catalog with a starter menu.
func SeedMenu(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Dish{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := map[string]*entity.Category{
		"Starters":  {Name: "Starters", Description: "Small plates to begin with"},
		"Mains":     {Name: "Mains", Description: "Our main courses"},
		"Desserts":  {Name: "Desserts", Description: "Something sweet"},
		"Beverages": {Name: "Beverages", Description: "Hot and cold drinks"},
	}
	for _, c := range categories {
		if err := db.FirstOrCreate(c, entity.Category{Name: c.Name}).Error; err != nil {
			return err
		}
	}

	dishes := []entity.Dish{
		{Name: "Bruschetta", Description: "Grilled bread, tomato, basil", Price: 650, CategoryID: categories["Starters"].ID},
		{Name: "French Onion Soup", Description: "Caramelized onion, gruyere crouton", Price: 800, CategoryID: categories["Starters"].ID},
		{Name: "Grilled Salmon", Description: "With lemon butter and greens", Price: 2200, CategoryID: categories["Mains"].ID},
		{Name: "Ribeye Steak", Description: "300g, served with fries", Price: 3400, CategoryID: categories["Mains"].ID},
		{Name: "Margherita Pizza", Description: "Tomato, mozzarella, basil", Price: 1400, CategoryID: categories["Mains"].ID},
		{Name: "Tiramisu", Description: "Espresso-soaked, mascarpone cream", Price: 750, CategoryID: categories["Desserts"].ID},
		{Name: "House Lemonade", Description: "Fresh squeezed", Price: 400, CategoryID: categories["Beverages"].ID},
	}
	return db.Create(&dishes).Error
}

// SeedCoupons keeps a small pool of claimable coupons available.
func SeedCoupons(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Coupon{}).Where("user_id IS NULL AND is_active = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	expiry := time.Now().AddDate(0, 3, 0)
	coupons := []entity.Coupon{
		{Code: mintCode("SAVE5"), DiscountPercentage: 5, PointsRequired: 25, IsActive: true, ExpiryDate: expiry},
		{Code: mintCode("SAVE10"), DiscountPercentage: 10, PointsRequired: 50, IsActive: true, ExpiryDate: expiry},
		{Code: mintCode("SAVE20"), DiscountPercentage: 20, PointsRequired: 100, IsActive: true, ExpiryDate: expiry},
	}
	return db.Create(&coupons).Error
}

func mintCode(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(uuid.NewString()[:8]))
}
