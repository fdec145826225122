package main

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/tilemart/storefront-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Seeds the sample catalog and makes sure an admin account exists. Existing
// products and categories are wiped first, matching the original seed script.
func main() {
	_ = godotenv.Load()

	db, err := gorm.Open(postgres.Open(dsnFromEnv()), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	if err := seed(db); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
	log.Println("✅ Database seeded successfully")
}

func dsnFromEnv() string {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		return databaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"),
	)
}

func seed(db *gorm.DB) error {
	// Clear existing catalog data
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Product{}).Error; err != nil {
		return err
	}
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Category{}).Error; err != nil {
		return err
	}
	log.Println("🧹 Cleared existing catalog data")

	categories := []models.Category{
		{
			Name:        "Electronics",
			Description: "Electronic devices and accessories",
			Image:       "https://example.com/electronics.jpg",
		},
		{
			Name:        "Clothing",
			Description: "Fashion and apparel",
			Image:       "https://example.com/clothing.jpg",
		},
		{
			Name:        "Tiles",
			Description: "Flooring and wall tiles",
			Image:       "https://example.com/tiles.jpg",
		},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}
	log.Printf("📦 Inserted %d categories", len(categories))

	byName := make(map[string]uint, len(categories))
	for _, cat := range categories {
		byName[cat.Name] = cat.ID
	}

	products := []models.Product{
		{
			Title:       "Smartphone X",
			Description: "Latest smartphone with advanced features",
			Price:       999.99,
			CategoryID:  byName["Electronics"],
			Image:       "https://example.com/smartphone.jpg",
			Stock:       50,
			Material:    "Metal and Glass",
			Color:       "Black",
		},
		{
			Title:       "Designer T-Shirt",
			Description: "Premium quality cotton t-shirt",
			Price:       49.99,
			CategoryID:  byName["Clothing"],
			Image:       "https://example.com/tshirt.jpg",
			Stock:       100,
			Size:        "M",
			Color:       "White",
		},
		{
			Title:        "Ceramic Floor Tile",
			Description:  "High-quality ceramic floor tile",
			Price:        29.99,
			PerBoxPrice:  299.99,
			CategoryID:   byName["Tiles"],
			Image:        "https://example.com/tile.jpg",
			Stock:        200,
			Material:     "Ceramic",
			Size:         "12x12 inches",
			CoverageArea: "1 sq ft",
			QtyPerBox:    10,
		},
	}
	if err := db.Create(&products).Error; err != nil {
		return err
	}
	log.Printf("📦 Inserted %d products", len(products))

	return ensureAdmin(db)
}

func ensureAdmin(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("⚠️ ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin user")
		return nil
	}

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("👤 Admin user %s already exists", email)
		return nil
	}

	admin := models.User{
		ID:       uuid.NewString(),
		Email:    email,
		Username: "admin",
		Role:     models.RoleAdmin,
	}
	if err := admin.SetPassword(password); err != nil {
		return err
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("👤 Created admin user %s", email)
	return nil
}
