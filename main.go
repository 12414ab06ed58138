package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Turki20/HallaOrder/models"
	"github.com/Turki20/HallaOrder/routes"
	"github.com/Turki20/HallaOrder/session"
)

func main() {
	log.Println("starting HallaOrder...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.SubscriptionPlan{},
		&models.Restaurant{},
		&models.Branch{},
		&models.Employee{},
		&models.Website{},
		&models.Category{},
		&models.Product{},
		&models.OptionGroup{},
		&models.Option{},
		&models.Order{},
		&models.OrderItem{},
		&models.DeliveryDetails{},
		&models.PickupDetails{},
		&models.DineInDetails{},
		&models.Payment{},
		&models.Invoice{},
		&models.WalletTransaction{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// Cart store: redis when configured, in-process otherwise
	var carts session.Store
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		carts = session.NewRedis(addr)
		log.Println("using redis cart store at", addr)
	} else {
		carts = session.NewMemory()
		log.Println("REDIS_ADDR not set, using in-memory cart store")
	}

	// Gin setup
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, db, carts)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("listening on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func initDatabase() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			getenv("DB_HOST", "localhost"),
			getenv("DB_USER", "postgres"),
			getenv("DB_PASSWORD", "postgres"),
			getenv("DB_NAME", "hallaorder"),
			getenv("DB_PORT", "5432"),
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	return db
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
