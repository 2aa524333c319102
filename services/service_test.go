package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/spokefoods/spoke-backend/models"
	"github.com/spokefoods/spoke-backend/utils"
)

func init() {
	utils.InitLogger()
}

var testDBSeq int64

// setupTestDB opens a fresh named in-memory database per test so parallel
// tests never share state through sqlite's shared cache.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Chef{},
		&models.Food{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.QueuedEmail{},
	))
	return db
}

func alwaysOffline() bool { return false }
func alwaysOnline() bool  { return true }

func createTestUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Name: "Test User", Email: email, Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestChef(t *testing.T, db *gorm.DB, name string, alloted int) models.Chef {
	t.Helper()
	chef := models.Chef{
		Name:      name,
		Email:     name + "@spoke.com",
		Password:  "hashed",
		Specialty: "South Indian",
		Alloted:   alloted,
	}
	require.NoError(t, db.Create(&chef).Error)
	return chef
}

func createTestFood(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Food {
	t.Helper()
	food := models.Food{Name: name, Price: price, QuantityAvailable: stock}
	require.NoError(t, db.Create(&food).Error)
	return food
}

func createTestCart(t *testing.T, db *gorm.DB, userID uint, lines map[uint]int) models.Cart {
	t.Helper()
	cart := models.Cart{UserID: userID}
	require.NoError(t, db.Create(&cart).Error)
	for foodID, qty := range lines {
		item := models.CartItem{CartID: cart.ID, FoodID: foodID, Quantity: qty}
		require.NoError(t, db.Create(&item).Error)
	}
	return cart
}
