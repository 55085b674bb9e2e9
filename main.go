package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/f-kazuma/smardy1210/config"
	"github.com/f-kazuma/smardy1210/middleware"
	"github.com/f-kazuma/smardy1210/routes"
	"github.com/f-kazuma/smardy1210/store"
	"github.com/f-kazuma/smardy1210/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize the record store
	var st store.Store
	switch cfg.StoreDriver {
	case "memory":
		st = store.NewMemoryStore()
	default:
		db, err := config.ConnectMongo(cfg)
		if err != nil {
			log.Fatalf("Error connecting to MongoDB: %v", err)
		}
		st = store.NewMongoStore(db)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, st, cfg)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
