// internal/services/review_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/gigworks/gigworks-backend/internal/models"
	"github.com/gigworks/gigworks-backend/internal/utils"
)

type ReviewService struct {
	db *gorm.DB
}

type CreateReviewRequest struct {
	BusinessUser uuid.UUID `json:"business_user" validate:"required"`
	Rating       int       `json:"rating" validate:"required,min=1,max=5"`
	Description  string    `json:"description"`
}

type UpdateReviewRequest struct {
	Rating      *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Description *string `json:"description,omitempty"`
}

type ReviewSearchParams struct {
	utils.PaginationParams
	BusinessUserID *uuid.UUID
	ReviewerID     *uuid.UUID
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// CreateReview records a rating for a business account. The reviewer is
// always the authenticated caller. Uniqueness of the (business, reviewer)
// pair rides on the database constraint, not an existence pre-check.
func (s *ReviewService) CreateReview(reviewerID uuid.UUID, req *CreateReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var business models.User
	if err := s.db.First(&business, req.BusinessUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("validation failed: business user does not exist")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if business.Type != models.UserTypeBusiness {
		return nil, errors.New("validation failed: target is not a business account")
	}

	review := &models.Review{
		BusinessUserID: req.BusinessUser,
		ReviewerID:     reviewerID,
		Rating:         req.Rating,
		Description:    req.Description,
	}

	if err := s.db.Create(review).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, errors.New("review already exists for this business")
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return review, nil
}

func (s *ReviewService) ListReviews(params *ReviewSearchParams) ([]models.Review, error) {
	query := s.db.Model(&models.Review{})

	if params.BusinessUserID != nil {
		query = query.Where("business_user_id = ?", *params.BusinessUserID)
	}
	if params.ReviewerID != nil {
		query = query.Where("reviewer_id = ?", *params.ReviewerID)
	}

	query = utils.ApplySort(query, params.PaginationParams, []string{"rating", "updated_at", "created_at"})
	query = utils.ApplyPagination(query, params.PaginationParams)

	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return reviews, nil
}

func (s *ReviewService) GetReview(id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("review not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &review, nil
}

func (s *ReviewService) UpdateReview(id uuid.UUID, userID uuid.UUID, req *UpdateReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	review, err := s.GetReview(id)
	if err != nil {
		return nil, err
	}

	if review.ReviewerID != userID {
		return nil, errors.New("unauthorized to update this review")
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Description != nil {
		review.Description = *req.Description
	}

	if err := s.db.Save(review).Error; err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return review, nil
}

func (s *ReviewService) DeleteReview(id uuid.UUID, userID uuid.UUID) error {
	review, err := s.GetReview(id)
	if err != nil {
		return err
	}

	if review.ReviewerID != userID {
		return errors.New("unauthorized to delete this review")
	}

	if err := s.db.Delete(review).Error; err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

// isUniqueViolation recognizes a unique-index violation from Postgres
// (error code 23505) and from the SQLite driver used in tests.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
