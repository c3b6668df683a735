// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gigworks/gigworks-backend/internal/config"
	"github.com/gigworks/gigworks-backend/internal/handlers"
	"github.com/gigworks/gigworks-backend/internal/i18n"
	"github.com/gigworks/gigworks-backend/internal/middleware"
	"github.com/gigworks/gigworks-backend/internal/services"
	"github.com/gigworks/gigworks-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)
	authService := services.NewAuthService(db, cfg)
	profileService := services.NewProfileService(db)
	offerService := services.NewOfferService(db)
	orderService := services.NewOrderService(db)
	reviewService := services.NewReviewService(db)
	statsService := services.NewStatsService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService, storageService)
	offerHandler := handlers.NewOfferHandler(offerService, storageService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"version":   "1.0.0",
			"languages": i18n.GetSupportedLanguages(),
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/registration", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Account routes
		users := v1.Group("/users")
		users.Use(middleware.AuthRequired())
		{
			users.DELETE("/account", authHandler.DeleteAccount)
		}

		// Profile routes
		profile := v1.Group("/profile")
		profile.Use(middleware.AuthRequired())
		{
			profile.GET("/:user_id", profileHandler.GetProfile)
			profile.PATCH("/:user_id", profileHandler.UpdateProfile)
			profile.POST("/upload-avatar", middleware.UploadRateLimit(), profileHandler.UploadAvatar)
		}

		profiles := v1.Group("/profiles")
		profiles.Use(middleware.AuthRequired())
		{
			profiles.GET("/business", profileHandler.ListBusinessProfiles)
			profiles.GET("/customer", profileHandler.ListCustomerProfiles)
		}

		// Offer routes
		offers := v1.Group("/offers")
		{
			offers.GET("", middleware.OptionalAuth(), offerHandler.ListOffers)

			protected := offers.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", offerHandler.CreateOffer)
				protected.GET("/:id", offerHandler.GetOffer)
				protected.PATCH("/:id", offerHandler.UpdateOffer)
				protected.DELETE("/:id", offerHandler.DeleteOffer)
				protected.POST("/upload-image", middleware.UploadRateLimit(), offerHandler.UploadImage)
			}
		}

		offerDetails := v1.Group("/offer-details")
		offerDetails.Use(middleware.AuthRequired())
		{
			offerDetails.GET("/:id", offerHandler.GetOfferDetail)
		}

		// Order routes
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.ListOrders)
			orders.PATCH("/:id", orderHandler.UpdateOrder)
			orders.DELETE("/:id", middleware.StaffRequired(), orderHandler.DeleteOrder)
			orders.GET("/count/:business_id", orderHandler.CountInProgress)
			orders.GET("/completed-count/:business_id", orderHandler.CountCompleted)
		}

		// Review routes
		reviews := v1.Group("/reviews")
		reviews.Use(middleware.AuthRequired())
		{
			reviews.POST("", reviewHandler.CreateReview)
			reviews.GET("", reviewHandler.ListReviews)
			reviews.PATCH("/:id", reviewHandler.UpdateReview)
			reviews.DELETE("/:id", reviewHandler.DeleteReview)
		}

		// Aggregation (public)
		v1.GET("/base-info", statsHandler.GetBaseInfo)
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", cfg.Upload.LocalPath)
	}

	return r
}
