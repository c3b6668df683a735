// internal/tests/setup_test.go
package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gigworks/gigworks-backend/internal/config"
	"github.com/gigworks/gigworks-backend/internal/database"
	"github.com/gigworks/gigworks-backend/internal/handlers"
	"github.com/gigworks/gigworks-backend/internal/middleware"
	"github.com/gigworks/gigworks-backend/internal/models"
	"github.com/gigworks/gigworks-backend/internal/services"
	"github.com/gigworks/gigworks-backend/internal/utils"
)

// testEnv wires the full handler stack against an in-memory database.
// Rate limiting and audit logging are left out of the middleware chain so
// tests stay deterministic.
type testEnv struct {
	t      *testing.T
	db     *gorm.DB
	cfg    *config.Config
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every session on the same in-memory DB
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))

	cfg := &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
		Upload: config.UploadConfig{
			MaxAvatarSizeMB: 2,
			MaxImageSizeMB:  10,
			LocalPath:       t.TempDir(),
		},
	}
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	storageService, err := services.NewStorageService(cfg)
	require.NoError(t, err)
	authService := services.NewAuthService(db, cfg)
	profileService := services.NewProfileService(db)
	offerService := services.NewOfferService(db)
	orderService := services.NewOrderService(db)
	reviewService := services.NewReviewService(db)
	statsService := services.NewStatsService(db)

	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService, storageService)
	offerHandler := handlers.NewOfferHandler(offerService, storageService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	statsHandler := handlers.NewStatsHandler(statsService)

	r := gin.New()
	r.Use(middleware.I18nMiddleware())

	v1 := r.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/registration", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		users := v1.Group("/users")
		users.Use(middleware.AuthRequired())
		{
			users.DELETE("/account", authHandler.DeleteAccount)
		}

		profile := v1.Group("/profile")
		profile.Use(middleware.AuthRequired())
		{
			profile.GET("/:user_id", profileHandler.GetProfile)
			profile.PATCH("/:user_id", profileHandler.UpdateProfile)
			profile.POST("/upload-avatar", profileHandler.UploadAvatar)
		}

		profiles := v1.Group("/profiles")
		profiles.Use(middleware.AuthRequired())
		{
			profiles.GET("/business", profileHandler.ListBusinessProfiles)
			profiles.GET("/customer", profileHandler.ListCustomerProfiles)
		}

		offers := v1.Group("/offers")
		{
			offers.GET("", offerHandler.ListOffers)

			protected := offers.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", offerHandler.CreateOffer)
				protected.GET("/:id", offerHandler.GetOffer)
				protected.PATCH("/:id", offerHandler.UpdateOffer)
				protected.DELETE("/:id", offerHandler.DeleteOffer)
			}
		}

		offerDetails := v1.Group("/offer-details")
		offerDetails.Use(middleware.AuthRequired())
		{
			offerDetails.GET("/:id", offerHandler.GetOfferDetail)
		}

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

		reviews := v1.Group("/reviews")
		reviews.Use(middleware.AuthRequired())
		{
			reviews.POST("", reviewHandler.CreateReview)
			reviews.GET("", reviewHandler.ListReviews)
			reviews.PATCH("/:id", reviewHandler.UpdateReview)
			reviews.DELETE("/:id", reviewHandler.DeleteReview)
		}

		v1.GET("/base-info", statsHandler.GetBaseInfo)
	}

	return &testEnv{t: t, db: db, cfg: cfg, router: r}
}

type testAccount struct {
	Token    string
	UserID   string
	Username string
}

var accountSeq int

// registerAccount creates an account of the given type and returns its
// bearer token.
func (e *testEnv) registerAccount(userType string) testAccount {
	e.t.Helper()
	accountSeq++
	username := fmt.Sprintf("user%d", accountSeq)

	w := e.request(http.MethodPost, "/v1/auth/registration", "", map[string]interface{}{
		"username":          username,
		"email":             username + "@example.com",
		"password":          "password123",
		"repeated_password": "password123",
		"type":              userType,
	})
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())

	data := decodeData(e.t, w)
	return testAccount{
		Token:    data["token"].(string),
		UserID:   data["user_id"].(string),
		Username: username,
	}
}

// promoteToStaff flags the account as staff and logs in again so the new
// claim lands in the token.
func (e *testEnv) promoteToStaff(account testAccount) testAccount {
	e.t.Helper()
	err := e.db.Model(&models.User{}).
		Where("username = ?", account.Username).
		Update("is_staff", true).Error
	require.NoError(e.t, err)

	w := e.request(http.MethodPost, "/v1/auth/login", "", map[string]interface{}{
		"username": account.Username,
		"password": "password123",
	})
	require.Equal(e.t, http.StatusOK, w.Code, w.Body.String())

	data := decodeData(e.t, w)
	account.Token = data["token"].(string)
	return account
}

func (e *testEnv) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()

	var buf *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		require.NoError(e.t, err)
		buf = bytes.NewBuffer(jsonData)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(e.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decodeData unwraps the data field of the response envelope as an object.
func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

// decodeList unwraps the data field of the response envelope as an array.
func decodeList(t *testing.T, w *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var resp struct {
		Success bool          `json:"success"`
		Data    []interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}
