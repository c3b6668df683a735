// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gigworks/gigworks-backend/internal/config"
	"github.com/gigworks/gigworks-backend/internal/database"
	"github.com/gigworks/gigworks-backend/internal/models"
	"github.com/gigworks/gigworks-backend/internal/utils"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

type RegisterRequest struct {
	Username         string          `json:"username" validate:"required,username"`
	Email            string          `json:"email" validate:"required,email"`
	Password         string          `json:"password" validate:"required,min=8"`
	RepeatedPassword string          `json:"repeated_password" validate:"required"`
	Type             models.UserType `json:"type" validate:"required,user_role"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	UserID       uuid.UUID `json:"user_id"`
	ExpiresIn    int       `json:"expires_in"` // in seconds
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
	}
}

func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.Password != req.RepeatedPassword {
		return nil, errors.New("validation failed: passwords do not match")
	}

	var existingUser models.User
	if err := s.db.Where("email = ? OR username = ?", req.Email, req.Username).First(&existingUser).Error; err == nil {
		if existingUser.Email == req.Email {
			return nil, errors.New("validation failed: email already in use")
		}
		return nil, errors.New("validation failed: username already taken")
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Type:     req.Type,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The account and its profile are created together or not at all
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		profile := &models.Profile{UserID: user.ID}
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		user.Profile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid credentials")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, errors.New("invalid credentials")
	}

	now := time.Now()
	user.LastLoginAt = &now
	s.db.Save(&user)

	return s.issueTokens(&user)
}

func (s *AuthService) RefreshToken(refreshToken string) (*AuthResponse, error) {
	userIDStr, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return s.issueTokens(&user)
}

func (s *AuthService) GetUserByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Profile").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

// DeleteAccount removes the account after re-checking the password. The
// profile, offers with their tiers, orders and reviews touching the account
// go with it in one transaction.
func (s *AuthService) DeleteAccount(userID uuid.UUID, req *DeleteAccountRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("user not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return errors.New("invalid credentials")
	}

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var offerIDs []uuid.UUID
		if err := tx.Model(&models.Offer{}).Where("user_id = ?", userID).
			Pluck("id", &offerIDs).Error; err != nil {
			return fmt.Errorf("failed to collect offers: %w", err)
		}
		if len(offerIDs) > 0 {
			if err := tx.Where("offer_id IN ?", offerIDs).
				Delete(&models.OfferDetail{}).Error; err != nil {
				return fmt.Errorf("failed to delete offer details: %w", err)
			}
			if err := tx.Where("id IN ?", offerIDs).
				Delete(&models.Offer{}).Error; err != nil {
				return fmt.Errorf("failed to delete offers: %w", err)
			}
		}
		if err := tx.Where("customer_user_id = ? OR business_user_id = ?", userID, userID).
			Delete(&models.Order{}).Error; err != nil {
			return fmt.Errorf("failed to delete orders: %w", err)
		}
		if err := tx.Where("business_user_id = ? OR reviewer_id = ?", userID, userID).
			Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("failed to delete reviews: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).
			Delete(&models.Profile{}).Error; err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}
		if err := tx.Delete(&user).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}

func (s *AuthService) issueTokens(user *models.User) (*AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(
		user.ID,
		user.Username,
		string(user.Type),
		user.IsStaff,
		s.cfg.JWT.AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken(user.ID, s.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		Username:     user.Username,
		Email:        user.Email,
		UserID:       user.ID,
		ExpiresIn:    s.cfg.JWT.AccessTokenTTL * 3600,
	}, nil
}
