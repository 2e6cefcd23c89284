package main

import (
	"fmt"
	"log"
	"net/http"

	"gamedex/backend/internal/auth"
	"gamedex/backend/internal/config"
	"gamedex/backend/internal/database"
	"gamedex/backend/internal/handler"
	"gamedex/backend/internal/metrics"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "gamedex/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Gamedex API
// @version         1.0
// @description     This is the API for the Gamedex game catalog.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	router := gin.Default()
	router.Use(metrics.Middleware())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus scrape endpoint
	router.GET("/metrics", metrics.Handler())

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// Catalog routes. All readable anonymously; a valid token only
		// enriches game details with the caller's own rating.
		catalog := apiV1.Group("")
		catalog.Use(auth.OptionalAuthMiddleware())
		{
			gameRoutes := catalog.Group("/games")
			{
				gameRoutes.GET("", handler.GetGames)
				gameRoutes.GET("/:id", handler.GetGameByID)
				gameRoutes.GET("/:id/releases", handler.GetGameReleases)
			}

			platformRoutes := catalog.Group("/platforms")
			{
				platformRoutes.GET("", handler.GetPlatforms)
				platformRoutes.GET("/:id", handler.GetPlatformByID)
				platformRoutes.GET("/:id/games", handler.GetPlatformGames)
			}

			taxonomyRoutes := catalog.Group("/taxonomies")
			{
				taxonomyRoutes.GET("", handler.GetTaxonomies)
				taxonomyRoutes.GET("/:kind/:value", handler.GetTaxonomyValue)
				taxonomyRoutes.GET("/:kind/:value/games", handler.GetTaxonomyGames)
			}

			companyRoutes := catalog.Group("/companies")
			{
				companyRoutes.GET("", handler.GetCompanies)
				companyRoutes.GET("/:id", handler.GetCompanyByID)
			}

			directorRoutes := catalog.Group("/directors")
			{
				directorRoutes.GET("", handler.GetDirectors)
				directorRoutes.GET("/:id", handler.GetDirectorByID)
			}

			topRoutes := catalog.Group("/top")
			{
				topRoutes.GET("/games-by-genre", handler.TopGamesByGenre)
				topRoutes.GET("/games-by-setting", handler.TopGamesBySetting)
				topRoutes.GET("/companies-by-genre", handler.TopCompaniesByGenre)
				topRoutes.GET("/directors-by-volume", handler.TopDirectorsByVolume)
				topRoutes.GET("/collaborations", handler.TopCollaborations)
			}

			catalog.GET("/dream-game", handler.DreamGame)
		}

		// Rating routes (protected)
		rated := apiV1.Group("")
		rated.Use(auth.AuthMiddleware())
		{
			rated.POST("/games/:id/rating", handler.SubmitRating)
			rated.GET("/users/me/ratings", handler.GetMyRatings)
		}
	}

	addr := ":" + config.AppConfig.Port
	fmt.Println("Server is running on " + addr)
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(addr))
}
