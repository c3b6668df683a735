// internal/services/order_service.go
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

type OrderService struct {
	db *gorm.DB
}

type CreateOrderRequest struct {
	OfferDetailID uuid.UUID `json:"offer_detail_id" validate:"required"`
}

// OrderView materializes the ordered tier's fields into the order payload,
// which is how clients consume orders.
type OrderView struct {
	ID                 uuid.UUID          `json:"id"`
	CustomerUser       uuid.UUID          `json:"customer_user"`
	BusinessUser       uuid.UUID          `json:"business_user"`
	Title              string             `json:"title"`
	Revisions          int                `json:"revisions"`
	DeliveryTimeInDays int                `json:"delivery_time_in_days"`
	Price              float64            `json:"price"`
	Features           []string           `json:"features"`
	OfferType          models.OfferType   `json:"offer_type"`
	Status             models.OrderStatus `json:"status"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CreateOrder places an order against an offer tier. The tier's offer
// owner is snapshotted as the business party at this point and never
// re-derived afterwards.
func (s *OrderService) CreateOrder(customerID uuid.UUID, req *CreateOrderRequest) (*OrderView, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var detail models.OfferDetail
	if err := s.db.Preload("Offer").First(&detail, req.OfferDetailID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("offer detail not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	order := &models.Order{
		CustomerUserID: customerID,
		BusinessUserID: detail.Offer.UserID,
		OfferDetailID:  detail.ID,
		Status:         models.OrderStatusInProgress,
	}

	if err := s.db.Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	order.OfferDetail = detail
	return buildOrderView(order), nil
}

// ListOrders returns the orders the caller participates in, as either party.
func (s *OrderService) ListOrders(userID uuid.UUID) ([]OrderView, error) {
	var orders []models.Order
	if err := s.db.Preload("OfferDetail").
		Where("customer_user_id = ? OR business_user_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, *buildOrderView(&orders[i]))
	}
	return views, nil
}

func (s *OrderService) GetOrder(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("OfferDetail").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func (s *OrderService) UpdateStatus(id uuid.UUID, userID uuid.UUID, status models.OrderStatus) (*OrderView, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}

	if order.BusinessUserID != userID {
		return nil, errors.New("unauthorized to update this order")
	}

	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("validation failed: invalid status %q", status)
	}

	order.Status = status
	if err := s.db.Save(order).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	return buildOrderView(order), nil
}

func (s *OrderService) DeleteOrder(id uuid.UUID) error {
	order, err := s.GetOrder(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(order).Error; err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

func (s *OrderService) CountInProgress(businessID uuid.UUID) (int64, error) {
	return s.countByStatus(businessID, models.OrderStatusInProgress)
}

func (s *OrderService) CountCompleted(businessID uuid.UUID) (int64, error) {
	return s.countByStatus(businessID, models.OrderStatusCompleted)
}

func (s *OrderService) countByStatus(businessID uuid.UUID, status models.OrderStatus) (int64, error) {
	var business models.User
	if err := s.db.Where("id = ? AND type = ?", businessID, models.UserTypeBusiness).
		First(&business).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errors.New("business user not found")
		}
		return 0, fmt.Errorf("database error: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.Order{}).
		Where("business_user_id = ? AND status = ?", businessID, status).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

func buildOrderView(order *models.Order) *OrderView {
	features := []string(order.OfferDetail.Features)
	if features == nil {
		features = []string{}
	}
	return &OrderView{
		ID:                 order.ID,
		CustomerUser:       order.CustomerUserID,
		BusinessUser:       order.BusinessUserID,
		Title:              order.OfferDetail.Title,
		Revisions:          order.OfferDetail.Revisions,
		DeliveryTimeInDays: order.OfferDetail.DeliveryTimeInDays,
		Price:              order.OfferDetail.Price,
		Features:           features,
		OfferType:          order.OfferDetail.OfferType,
		Status:             order.Status,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
}
