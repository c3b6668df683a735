// internal/models/order.go
package models

import (
	"github.com/google/uuid"
)

// Order binds a customer to an offer tier. BusinessUserID is a snapshot of
// the tier's offer owner taken at creation time and is never re-derived.
type Order struct {
	BaseModel
	CustomerUserID uuid.UUID   `json:"customer_user" gorm:"type:uuid;not null;index"`
	BusinessUserID uuid.UUID   `json:"business_user" gorm:"type:uuid;not null;index"`
	OfferDetailID  uuid.UUID   `json:"offer_detail_id" gorm:"type:uuid;not null;index"`
	Status         OrderStatus `json:"status" gorm:"type:varchar(20);default:'in_progress';index"`

	// Relationships
	CustomerUser User        `json:"-" gorm:"foreignKey:CustomerUserID"`
	BusinessUser User        `json:"-" gorm:"foreignKey:BusinessUserID"`
	OfferDetail  OfferDetail `json:"-" gorm:"foreignKey:OfferDetailID"`
}
