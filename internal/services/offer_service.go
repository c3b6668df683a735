// internal/services/offer_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gigworks/gigworks-backend/internal/database"
	"github.com/gigworks/gigworks-backend/internal/models"
	"github.com/gigworks/gigworks-backend/internal/utils"
)

type OfferService struct {
	db *gorm.DB
}

type OfferTierRequest struct {
	Title              string           `json:"title" validate:"required,max=255"`
	Revisions          int              `json:"revisions" validate:"min=0"`
	DeliveryTimeInDays int              `json:"delivery_time_in_days" validate:"min=0"`
	Price              float64          `json:"price" validate:"min=0"`
	Features           []string         `json:"features"`
	OfferType          models.OfferType `json:"offer_type" validate:"required,offer_type"`
}

type CreateOfferRequest struct {
	Title       string             `json:"title" validate:"required,max=255"`
	Image       string             `json:"image,omitempty"`
	Description string             `json:"description" validate:"required"`
	Details     []OfferTierRequest `json:"details" validate:"required,min=1,dive"`
}

type UpdateOfferRequest struct {
	Title       *string            `json:"title,omitempty" validate:"omitempty,max=255"`
	Image       *string            `json:"image,omitempty"`
	Description *string            `json:"description,omitempty"`
	Details     []OfferTierRequest `json:"details,omitempty" validate:"omitempty,dive"`
}

type OfferSearchParams struct {
	utils.PaginationParams
	CreatorID       *uuid.UUID
	MinPrice        *float64
	MaxDeliveryTime *int
}

// OfferView is an offer with its derived pricing fields. MinPrice and
// MinDeliveryTime are computed from the tier set on every read and never
// stored.
type OfferView struct {
	ID              uuid.UUID            `json:"id"`
	User            uuid.UUID            `json:"user"`
	Title           string               `json:"title"`
	Image           string               `json:"image"`
	Description     string               `json:"description"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
	Details         []models.OfferDetail `json:"details"`
	MinPrice        float64              `json:"min_price"`
	MinDeliveryTime *int                 `json:"min_delivery_time"`
}

func NewOfferService(db *gorm.DB) *OfferService {
	return &OfferService{db: db}
}

func (s *OfferService) ListOffers(params *OfferSearchParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Offer{})

	if params.CreatorID != nil {
		query = query.Where("user_id = ?", *params.CreatorID)
	}
	if params.MinPrice != nil {
		// Exact match against any tier price
		query = query.Where(
			"EXISTS (SELECT 1 FROM offer_details od WHERE od.offer_id = offers.id AND od.deleted_at IS NULL AND od.price = ?)",
			*params.MinPrice,
		)
	}
	if params.MaxDeliveryTime != nil {
		// Bound applies to the cheapest delivery time across tiers
		query = query.Where(
			"(SELECT MIN(od.delivery_time_in_days) FROM offer_details od WHERE od.offer_id = offers.id AND od.deleted_at IS NULL) <= ?",
			*params.MaxDeliveryTime,
		)
	}
	if params.Search != "" {
		pattern := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count offers: %w", err)
	}

	switch params.Sort {
	case "min_price":
		query = query.Order(
			"(SELECT MIN(od.price) FROM offer_details od WHERE od.offer_id = offers.id AND od.deleted_at IS NULL) " + params.Order,
		)
	default:
		query = query.Order("updated_at " + params.Order)
	}

	var offers []models.Offer
	if err := utils.ApplyPagination(query, params.PaginationParams).
		Preload("Details").
		Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch offers: %w", err)
	}

	views := make([]OfferView, 0, len(offers))
	for i := range offers {
		views = append(views, *buildOfferView(&offers[i]))
	}

	result := utils.CreatePaginationResult(views, total, params.PaginationParams)
	return &result, nil
}

func (s *OfferService) GetOffer(id uuid.UUID) (*OfferView, error) {
	var offer models.Offer
	if err := s.db.Preload("Details").First(&offer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("offer not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return buildOfferView(&offer), nil
}

// getOfferModel is the raw record, used by ownership checks.
func (s *OfferService) getOfferModel(id uuid.UUID) (*models.Offer, error) {
	var offer models.Offer
	if err := s.db.First(&offer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("offer not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &offer, nil
}

func (s *OfferService) GetOfferDetail(id uuid.UUID) (*models.OfferDetail, error) {
	var detail models.OfferDetail
	if err := s.db.First(&detail, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("offer detail not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &detail, nil
}

func (s *OfferService) CreateOffer(userID uuid.UUID, req *CreateOfferRequest) (*OfferView, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	offer := &models.Offer{
		UserID:      userID,
		Title:       req.Title,
		Image:       req.Image,
		Description: req.Description,
	}

	// The offer and its tiers land together or not at all
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(offer).Error; err != nil {
			return fmt.Errorf("failed to create offer: %w", err)
		}
		for _, tier := range req.Details {
			detail := &models.OfferDetail{
				OfferID:            offer.ID,
				Title:              tier.Title,
				Revisions:          tier.Revisions,
				DeliveryTimeInDays: tier.DeliveryTimeInDays,
				Price:              tier.Price,
				Features:           models.StringList(tier.Features),
				OfferType:          tier.OfferType,
			}
			if err := tx.Create(detail).Error; err != nil {
				return fmt.Errorf("failed to create offer detail: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOffer(offer.ID)
}

// UpdateOffer replaces top-level fields and patches tiers by their
// offer_type label. A detail naming a label the offer does not have, or
// carrying no label at all, fails the whole update.
func (s *OfferService) UpdateOffer(id uuid.UUID, userID uuid.UUID, req *UpdateOfferRequest) (*OfferView, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var offer models.Offer
	if err := s.db.Preload("Details").First(&offer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("offer not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if offer.UserID != userID {
		return nil, errors.New("unauthorized to update this offer")
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if req.Title != nil {
			offer.Title = *req.Title
		}
		if req.Image != nil {
			offer.Image = *req.Image
		}
		if req.Description != nil {
			offer.Description = *req.Description
		}
		if err := tx.Save(&offer).Error; err != nil {
			return fmt.Errorf("failed to update offer: %w", err)
		}

		for _, tier := range req.Details {
			existing := findTierByLabel(offer.Details, tier.OfferType)
			if existing == nil {
				return fmt.Errorf("validation failed: offer has no %s tier", tier.OfferType)
			}
			existing.Title = tier.Title
			existing.Revisions = tier.Revisions
			existing.DeliveryTimeInDays = tier.DeliveryTimeInDays
			existing.Price = tier.Price
			existing.Features = models.StringList(tier.Features)
			if err := tx.Save(existing).Error; err != nil {
				return fmt.Errorf("failed to update offer detail: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOffer(id)
}

func (s *OfferService) DeleteOffer(id uuid.UUID, userID uuid.UUID) error {
	offer, err := s.getOfferModel(id)
	if err != nil {
		return err
	}

	if offer.UserID != userID {
		return errors.New("unauthorized to delete this offer")
	}

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("offer_id = ?", id).Delete(&models.OfferDetail{}).Error; err != nil {
			return fmt.Errorf("failed to delete offer details: %w", err)
		}
		if err := tx.Delete(offer).Error; err != nil {
			return fmt.Errorf("failed to delete offer: %w", err)
		}
		return nil
	})
}

func findTierByLabel(details []models.OfferDetail, label models.OfferType) *models.OfferDetail {
	for i := range details {
		if details[i].OfferType == label {
			return &details[i]
		}
	}
	return nil
}

func buildOfferView(offer *models.Offer) *OfferView {
	view := &OfferView{
		ID:          offer.ID,
		User:        offer.UserID,
		Title:       offer.Title,
		Image:       offer.Image,
		Description: offer.Description,
		CreatedAt:   offer.CreatedAt,
		UpdatedAt:   offer.UpdatedAt,
		Details:     offer.Details,
	}
	if view.Details == nil {
		view.Details = []models.OfferDetail{}
	}

	for i := range offer.Details {
		d := &offer.Details[i]
		if view.MinDeliveryTime == nil {
			view.MinPrice = d.Price
			days := d.DeliveryTimeInDays
			view.MinDeliveryTime = &days
			continue
		}
		if d.Price < view.MinPrice {
			view.MinPrice = d.Price
		}
		if d.DeliveryTimeInDays < *view.MinDeliveryTime {
			days := d.DeliveryTimeInDays
			view.MinDeliveryTime = &days
		}
	}
	return view
}
