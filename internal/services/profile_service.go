// internal/services/profile_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gigworks/gigworks-backend/internal/models"
	"github.com/gigworks/gigworks-backend/internal/utils"
)

type ProfileService struct {
	db *gorm.DB
}

type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Location     *string `json:"location,omitempty"`
	Tel          *string `json:"tel,omitempty"`
	Description  *string `json:"description,omitempty"`
	WorkingHours *string `json:"working_hours,omitempty"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
}

// ProfileView flattens a profile together with the owning account's public
// fields, which is how clients consume it.
type ProfileView struct {
	User         uuid.UUID  `json:"user"`
	Username     string     `json:"username"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	File         string     `json:"file"`
	UploadedAt   *time.Time `json:"uploaded_at"`
	Location     string     `json:"location"`
	Tel          string     `json:"tel"`
	Description  string     `json:"description"`
	WorkingHours string     `json:"working_hours"`
	Type         string     `json:"type"`
	Email        string     `json:"email"`
	CreatedAt    time.Time  `json:"created_at"`
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) GetProfile(userID uuid.UUID) (*ProfileView, error) {
	var user models.User
	if err := s.db.Preload("Profile").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("profile not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if user.Profile == nil {
		return nil, errors.New("profile not found")
	}
	return buildProfileView(&user), nil
}

func (s *ProfileService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*ProfileView, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.Preload("Profile").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("profile not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if user.Profile == nil {
		return nil, errors.New("profile not found")
	}

	if req.Email != nil && *req.Email != user.Email {
		var existing models.User
		if err := s.db.Where("email = ? AND id != ?", *req.Email, userID).
			First(&existing).Error; err == nil {
			return nil, errors.New("validation failed: email already in use")
		}
		user.Email = *req.Email
		if err := s.db.Save(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	profile := user.Profile
	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.Tel != nil {
		profile.Tel = *req.Tel
	}
	if req.Description != nil {
		profile.Description = *req.Description
	}
	if req.WorkingHours != nil {
		profile.WorkingHours = *req.WorkingHours
	}

	if err := s.db.Save(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return buildProfileView(&user), nil
}

// SetAvatar stores the new file reference and stamps uploaded_at.
func (s *ProfileService) SetAvatar(userID uuid.UUID, fileKey string) (*ProfileView, error) {
	var user models.User
	if err := s.db.Preload("Profile").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("profile not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if user.Profile == nil {
		return nil, errors.New("profile not found")
	}

	now := time.Now()
	user.Profile.File = fileKey
	user.Profile.UploadedAt = &now

	if err := s.db.Save(user.Profile).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return buildProfileView(&user), nil
}

// ListProfiles returns all profiles whose owning account has the given role.
func (s *ProfileService) ListProfiles(userType models.UserType) ([]ProfileView, error) {
	var users []models.User
	if err := s.db.Preload("Profile").
		Where("type = ?", userType).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	views := make([]ProfileView, 0, len(users))
	for i := range users {
		if users[i].Profile == nil {
			continue
		}
		views = append(views, *buildProfileView(&users[i]))
	}
	return views, nil
}

func buildProfileView(user *models.User) *ProfileView {
	p := user.Profile
	return &ProfileView{
		User:         user.ID,
		Username:     user.Username,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		File:         p.File,
		UploadedAt:   p.UploadedAt,
		Location:     p.Location,
		Tel:          p.Tel,
		Description:  p.Description,
		WorkingHours: p.WorkingHours,
		Type:         string(user.Type),
		Email:        user.Email,
		CreatedAt:    user.CreatedAt,
	}
}
