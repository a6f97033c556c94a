package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-order-engine/catalog"
	"github.com/yeremiapane/restaurant-order-engine/config"
	"github.com/yeremiapane/restaurant-order-engine/models"
	"github.com/yeremiapane/restaurant-order-engine/router"
	"github.com/yeremiapane/restaurant-order-engine/utils"
)

func main() {
	// Load .env sebelum apa pun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Seed katalog dari YAML bila masih kosong
	if seedPath := os.Getenv("CATALOG_SEED"); seedPath != "" {
		if err := catalog.SeedFromYAML(db, seedPath); err != nil {
			utils.ErrorLogger.Printf("Catalog seed failed: %v", err)
		}
	}

	r := router.SetupRouter(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.DeliveryAddress{},
		&models.MenuCategory{},
		&models.Menu{},
		&models.AddOn{},
		&models.Bundle{},
		&models.BundleSlot{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemAddOn{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
