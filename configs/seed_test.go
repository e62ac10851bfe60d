package configs

import (
	"testing"

	"backend/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func seedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := ConnectDB(":memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, SetupDatabase(db))
	return db
}

func TestSeedAdmin(t *testing.T) {
	db := seedTestDB(t)

	require.NoError(t, SeedAdmin(db, "Admin@Example.com", "hunter22"))

	var admin entity.User
	require.NoError(t, db.Where("role = ?", entity.RoleAdmin).First(&admin).Error)
	assert.Equal(t, "admin@example.com", admin.Email)
	assert.True(t, admin.IsAccountActivated)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("hunter22")))

	// idempotent on reruns
	require.NoError(t, SeedAdmin(db, "admin@example.com", "hunter22"))
	var count int64
	require.NoError(t, db.Model(&entity.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// missing credentials skip seeding entirely
	fresh := seedTestDB(t)
	require.NoError(t, SeedAdmin(fresh, "", ""))
	require.NoError(t, fresh.Model(&entity.User{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSeedMenuAndCoupons(t *testing.T) {
	db := seedTestDB(t)

	require.NoError(t, SeedMenu(db))
	require.NoError(t, SeedMenu(db)) // second run must not duplicate

	var dishes int64
	require.NoError(t, db.Model(&entity.Dish{}).Count(&dishes).Error)
	assert.EqualValues(t, 7, dishes)

	var categories int64
	require.NoError(t, db.Model(&entity.Category{}).Count(&categories).Error)
	assert.EqualValues(t, 4, categories)

	require.NoError(t, SeedCoupons(db))
	require.NoError(t, SeedCoupons(db))

	var coupons []entity.Coupon
	require.NoError(t, db.Find(&coupons).Error)
	require.Len(t, coupons, 3)
	for _, c := range coupons {
		assert.True(t, c.IsActive)
		assert.Nil(t, c.UserID, "seeded coupons start in the pool")
	}
}
