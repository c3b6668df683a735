// internal/models/review.go
package models

import (
	"github.com/google/uuid"
)

// Review is a customer's rating of a business account. A (business,
// reviewer) pair may hold at most one review, enforced by a unique index
// at the database level.
type Review struct {
	BaseModel
	BusinessUserID uuid.UUID `json:"business_user" gorm:"type:uuid;not null;index"`
	ReviewerID     uuid.UUID `json:"reviewer" gorm:"type:uuid;not null;index"`
	Rating         int       `json:"rating" gorm:"not null"`
	Description    string    `json:"description" gorm:"type:text"`

	BusinessUser User `json:"-" gorm:"foreignKey:BusinessUserID"`
	Reviewer     User `json:"-" gorm:"foreignKey:ReviewerID"`
}
