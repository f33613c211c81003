package main

import (
	"log"
	"math/rand/v2"

	"github.com/gin-gonic/gin"

	"github.com/jakemelvin/burApp/config"
	"github.com/jakemelvin/burApp/handlers"
	"github.com/jakemelvin/burApp/middleware"
	"github.com/jakemelvin/burApp/models"
	"github.com/jakemelvin/burApp/randutil"
	"github.com/jakemelvin/burApp/routes"
	"github.com/jakemelvin/burApp/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Party{},
		&models.PartyMember{},
		&models.Race{},
		&models.Attribution{},
		&models.Score{},
		&models.Car{},
		&models.Track{},
		&models.RaceParameter{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed reserved roles, default admin and starter catalogs
	if err := config.Seed(db); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Randomness source for track, car and parameter allocation. Shared
	// by concurrent request handlers, so it must be the locked variant.
	rng := randutil.NewRand(rand.Uint64(), rand.Uint64())

	// Initialize services
	authService := services.NewAuthService(db, cfg.JWTSecret)
	userService := services.NewUserService(db)
	roleService := services.NewRoleService(db)
	partyService := services.NewPartyService(db)
	raceService := services.NewRaceService(db, partyService, rng)
	scoreService := services.NewScoreService(db, redisClient)
	catalogService := services.NewCatalogService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)
	roleHandler := handlers.NewRoleHandler(roleService, userService)
	partyHandler := handlers.NewPartyHandler(partyService, scoreService)
	raceHandler := handlers.NewRaceHandler(raceService)
	scoreHandler := handlers.NewScoreHandler(scoreService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, userHandler, roleHandler, partyHandler, raceHandler, scoreHandler, catalogHandler, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
