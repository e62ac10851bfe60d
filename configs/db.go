package configs

import (
	"backend/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func ConnectDB(source string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(source), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func SetupDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Category{}, &entity.Dish{}, &entity.Rating{},
		&entity.Reservation{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Coupon{},
	)
}
