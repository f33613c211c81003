package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jakemelvin/burApp/handlers"
	"github.com/jakemelvin/burApp/middleware"
)

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	roleHandler *handlers.RoleHandler,
	partyHandler *handlers.PartyHandler,
	raceHandler *handlers.RaceHandler,
	scoreHandler *handlers.ScoreHandler,
	catalogHandler *handlers.CatalogHandler,
	jwtSecret string,
) {
	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			// User profile
			protected.GET("/auth/profile", authHandler.GetProfile)

			// User management
			users := protected.Group("/users")
			{
				users.GET("", userHandler.GetAll)
				users.GET("/:id", userHandler.GetByID)
				users.PUT("/:id", userHandler.UpdateProfile)
				users.DELETE("/:id", userHandler.Delete)
				users.POST("/:id/roles/:roleId", userHandler.AssignRole)
				users.DELETE("/:id/roles/:roleId", userHandler.RemoveRole)
			}

			// Role management
			roles := protected.Group("/roles")
			{
				roles.GET("", roleHandler.GetAll)
				roles.POST("", roleHandler.Create)
				roles.PUT("/:id", roleHandler.Update)
				roles.DELETE("/:id", roleHandler.Delete)
			}

			// Party routes
			parties := protected.Group("/parties")
			{
				parties.GET("", partyHandler.GetAll)
				parties.POST("/today", partyHandler.GetOrCreateToday)
				parties.GET("/:id", partyHandler.GetByID)
				parties.GET("/:id/members", partyHandler.Members)
				parties.GET("/:id/status", partyHandler.ActiveStatus)
				parties.GET("/:id/leaderboard", partyHandler.Leaderboard)
				parties.POST("/:id/join", partyHandler.Join)
				parties.POST("/:id/leave", partyHandler.Leave)
				parties.POST("/:id/deactivate", partyHandler.Deactivate)
				parties.POST("/:id/co-hosts/:userId", partyHandler.AssignCoHost)
				parties.DELETE("/:id/co-hosts/:userId", partyHandler.RemoveCoHost)
				parties.POST("/:id/transfer-ownership/:userId", partyHandler.TransferOwnership)
			}

			// Race routes
			races := protected.Group("/races")
			{
				races.POST("", raceHandler.Create)
				races.GET("", raceHandler.GetAll)
				races.GET("/:id", raceHandler.GetByID)
				races.POST("/:id/participants/:userId", raceHandler.AddParticipant)
				races.DELETE("/:id/participants/:userId", raceHandler.RemoveParticipant)
				races.POST("/:id/start", raceHandler.Start)
				races.POST("/:id/complete", raceHandler.Complete)
				races.POST("/:id/cancel", raceHandler.Cancel)
				races.POST("/:id/track", raceHandler.ChangeTrack)
				races.POST("/:id/cars", raceHandler.ReassignCars)
			}

			// Score routes
			scores := protected.Group("/scores")
			{
				scores.POST("", scoreHandler.Submit)
				scores.GET("", scoreHandler.GetAll)
				scores.GET("/:id", scoreHandler.GetByID)
				scores.PUT("/:id", scoreHandler.Update)
				scores.DELETE("/:id", scoreHandler.Delete)
			}

			// Catalog routes
			cars := protected.Group("/cars")
			{
				cars.GET("", catalogHandler.ListCars)
				cars.GET("/:id", catalogHandler.GetCar)
				cars.POST("", catalogHandler.CreateCar)
				cars.DELETE("/:id", catalogHandler.DeleteCar)
			}

			tracks := protected.Group("/tracks")
			{
				tracks.GET("", catalogHandler.ListTracks)
				tracks.GET("/:id", catalogHandler.GetTrack)
				tracks.POST("", catalogHandler.CreateTrack)
				tracks.DELETE("/:id", catalogHandler.DeleteTrack)
			}

			parameters := protected.Group("/race-parameters")
			{
				parameters.GET("", catalogHandler.ListRaceParameters)
				parameters.POST("", catalogHandler.CreateRaceParameter)
			}
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
