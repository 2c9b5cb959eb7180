package routes

import (
	"github.com/foodie-app/foodie-backend/internal/api/handlers"
	"github.com/foodie-app/foodie-backend/internal/api/middleware"
	"github.com/foodie-app/foodie-backend/internal/cache"
	"github.com/foodie-app/foodie-backend/internal/cms"
	"github.com/foodie-app/foodie-backend/internal/config"
	"github.com/foodie-app/foodie-backend/internal/repository"
	"github.com/foodie-app/foodie-backend/internal/services"
	"github.com/foodie-app/foodie-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, statsCache *cache.StatsCache, cfg *config.Config) {
	// Middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware(cfg))

	// CMS-issued user tokens are honored when a Strapi key is configured.
	var cmsVerifier middleware.IdentityVerifier
	if cfg.StrapiKey != "" {
		cmsVerifier = cms.NewClient(cfg.StrapiURL, cfg.StrapiKey)
	}
	requireAuth := middleware.AuthMiddleware(cfg, cmsVerifier)

	// Repositories
	reviewRepo := repository.NewReviewRepository(db)
	dishRepo := repository.NewDishRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)
	attributeRepo := repository.NewAttributeRepository(db)

	// Services
	emailService := services.NewEmailService(cfg)
	s3Service := services.NewS3Service(cfg.AWSRegion, cfg.S3Bucket, cfg.AWSAccessKey, cfg.AWSSecretKey)
	statsService := services.NewStatsService(reviewRepo, dishRepo, restaurantRepo, statsCache)
	authService := services.NewAuthService(db, cfg.JWTSecret)
	reviewService := services.NewReviewService(reviewRepo, dishRepo, statsService, emailService, cfg.ModerationEmail)
	restaurantService := services.NewRestaurantService(restaurantRepo, statsCache, s3Service)
	dishService := services.NewDishService(dishRepo, restaurantRepo, attributeRepo)
	attributeService := services.NewAttributeService(attributeRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService)
	dishHandler := handlers.NewDishHandler(dishService)
	attributeHandler := handlers.NewAttributeHandler(attributeService)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "message": "Server is running"})
	})

	// API routes
	api := router.Group("/api/v1")

	// Auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", requireAuth, authHandler.Logout)
		auth.POST("/refresh-token", authHandler.RefreshToken)
		auth.GET("/profile", requireAuth, authHandler.GetProfile)
		auth.PUT("/profile-update", requireAuth, authHandler.UpdateProfile)
	}

	// Restaurant routes (public reads)
	restaurants := api.Group("/restaurants")
	{
		restaurants.GET("/", restaurantHandler.ListRestaurants)
		restaurants.GET("/:restaurant_id", restaurantHandler.GetRestaurant)
		restaurants.GET("/:restaurant_id/dishes", dishHandler.GetRestaurantDishes)
	}

	// Dish routes (public reads)
	dishes := api.Group("/dishes")
	{
		dishes.GET("/:dish_id", dishHandler.GetDish)
		dishes.GET("/:dish_id/reviews", reviewHandler.GetDishReviews)
	}

	// Attribute routes (public reads)
	api.GET("/attributes", attributeHandler.ListAttributes)

	// Review routes (authenticated)
	reviews := api.Group("/reviews", requireAuth, middleware.CustomerOrAdmin())
	{
		reviews.POST("/", reviewHandler.CreateReview)
		reviews.PUT("/:review_id", reviewHandler.UpdateReview)
		reviews.DELETE("/:review_id", reviewHandler.DeleteReview)
		reviews.POST("/:review_id/flag", reviewHandler.FlagReview)
	}

	// Admin routes
	admin := api.Group("/admin", requireAuth, middleware.AdminOnly())
	{
		// Catalog management
		admin.POST("/restaurants", restaurantHandler.CreateRestaurant)
		admin.PUT("/restaurants/:restaurant_id", restaurantHandler.UpdateRestaurant)
		admin.DELETE("/restaurants/:restaurant_id", restaurantHandler.DeleteRestaurant)
		admin.POST("/restaurants/:restaurant_id/images", restaurantHandler.UploadImages)
		admin.DELETE("/images/:image_id", restaurantHandler.DeleteImage)

		admin.POST("/dishes", dishHandler.CreateDish)
		admin.PUT("/dishes/:dish_id", dishHandler.UpdateDish)
		admin.DELETE("/dishes/:dish_id", dishHandler.DeleteDish)

		admin.POST("/attributes", attributeHandler.CreateAttribute)
		admin.PUT("/attributes/:attribute_id", attributeHandler.UpdateAttribute)

		// Review moderation
		admin.GET("/reviews/flagged", reviewHandler.GetFlaggedReviews)
		admin.POST("/reviews/:review_id/moderate", reviewHandler.ModerateReview)
	}

	logger.Info("Routes initialized successfully")
}
