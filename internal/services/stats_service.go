// internal/services/stats_service.go
package services

import (
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/gigworks/gigworks-backend/internal/models"
)

type StatsService struct {
	db *gorm.DB
}

// BaseInfo is the public platform snapshot. AverageRating is nil when no
// reviews exist, never zero.
type BaseInfo struct {
	ReviewCount          int64    `json:"review_count"`
	AverageRating        *float64 `json:"average_rating"`
	BusinessProfileCount int64    `json:"business_profile_count"`
	OfferCount           int64    `json:"offer_count"`
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// GetBaseInfo computes the platform statistics live; nothing is cached or
// denormalized.
func (s *StatsService) GetBaseInfo() (*BaseInfo, error) {
	info := &BaseInfo{}

	if err := s.db.Model(&models.Review{}).Count(&info.ReviewCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	if info.ReviewCount > 0 {
		var avg float64
		if err := s.db.Model(&models.Review{}).
			Select("AVG(rating)").Scan(&avg).Error; err != nil {
			return nil, fmt.Errorf("failed to average ratings: %w", err)
		}
		rounded := math.Round(avg*10) / 10
		info.AverageRating = &rounded
	}

	if err := s.db.Model(&models.Profile{}).
		Joins("JOIN users ON users.id = profiles.user_id AND users.deleted_at IS NULL").
		Where("users.type = ?", models.UserTypeBusiness).
		Count(&info.BusinessProfileCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count business profiles: %w", err)
	}

	if err := s.db.Model(&models.Offer{}).Count(&info.OfferCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count offers: %w", err)
	}

	return info, nil
}
