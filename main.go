package main

import (
	"log"
	"os"
	"time"

	"techfix/auth"
	"techfix/cartstore"
	"techfix/checkout"
	"techfix/config"
	"techfix/db"
	"techfix/payment"
	"techfix/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	// Initialize database
	db.InitDatabase(cfg.DBPath)

	// Create uploads directory if it doesn't exist
	if _, err := os.Stat(cfg.UploadsDir); os.IsNotExist(err) {
		os.Mkdir(cfg.UploadsDir, 0755)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	carts := cartstore.WithNotify(cartstore.NewRedisStore(rdb), routes.NotifyChange)

	provider := payment.NewStripeProvider(cfg.StripeKey)
	flow := checkout.NewFlow(db.DB, carts, provider, cfg.MinChargeCents)

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Serve static files
	app.Static("/uploads", "./"+cfg.UploadsDir)

	// Setup routes
	routes.SetupRoutes(app, routes.Deps{
		Cfg:    cfg,
		Carts:  carts,
		Flow:   flow,
		JWT:    auth.NewJWTManager(cfg.JWTSecret, 24*time.Hour),
		Hasher: auth.NewPasswordHasher(),
	})

	// Start server
	log.Fatal(app.Listen(cfg.Addr))
}
