// internal/models/offer.go
package models

import (
	"github.com/google/uuid"
)

type Offer struct {
	BaseModel
	UserID      uuid.UUID `json:"user" gorm:"type:uuid;not null;index"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Image       string    `json:"image" gorm:"size:512"`
	Description string    `json:"description" gorm:"type:text;not null"`

	// Relationships
	User    User          `json:"-" gorm:"foreignKey:UserID"`
	Details []OfferDetail `json:"details,omitempty" gorm:"foreignKey:OfferID"`
}

// OfferDetail is one priced tier of an offer (basic, standard or premium).
type OfferDetail struct {
	BaseModel
	OfferID            uuid.UUID  `json:"offer_id" gorm:"type:uuid;not null;index"`
	Title              string     `json:"title" gorm:"size:255;not null"`
	Revisions          int        `json:"revisions" gorm:"not null"`
	DeliveryTimeInDays int        `json:"delivery_time_in_days" gorm:"not null"`
	Price              float64    `json:"price" gorm:"type:decimal(10,2);not null"`
	Features           StringList `json:"features" gorm:"type:text"`
	OfferType          OfferType  `json:"offer_type" gorm:"type:varchar(10);not null;index"`

	Offer Offer `json:"-" gorm:"foreignKey:OfferID"`
}
