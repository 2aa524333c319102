package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/spokefoods/spoke-backend/config"
	"github.com/spokefoods/spoke-backend/middlewares"
	"github.com/spokefoods/spoke-backend/models"
	"github.com/spokefoods/spoke-backend/router"
	"github.com/spokefoods/spoke-backend/services"
	"github.com/spokefoods/spoke-backend/utils"
	"gorm.io/gorm"
)

func main() {
	// Running without a .env file is fine in containers.
	envErr := godotenv.Load()
	utils.InitLogger()
	if envErr != nil {
		utils.InfoLogger.Println("Warning: .env file not found")
	}

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	datasetPath := config.Get("LOCATIONS_DATASET", "data/tamilnadu_locations.json")
	dataset, err := services.LoadOfflineLocations(datasetPath)
	if err != nil {
		utils.ErrorLogger.Printf("Offline locations dataset unavailable (%v); offline checkout will reject unknown places", err)
	} else {
		utils.InfoLogger.Printf("Loaded %d offline locations from %s", len(dataset), datasetPath)
	}

	online := services.NewReachabilityChecker(3 * time.Second)
	resolver := services.NewLocationResolver(online, dataset)

	mailer := services.NewMailer(db, online)
	mailer.StartQueueFlusher(5 * time.Minute)

	checkout := services.NewCheckoutService(db, resolver, mailer)
	orders := services.NewOrderService(db, mailer)

	r := router.SetupRouter(db, checkout, orders, mailer)

	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	port := config.Get("PORT", "8080")
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Chef{},
		&models.Food{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.QueuedEmail{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
