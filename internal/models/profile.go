// internal/models/profile.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the public-facing account details. Every account owns
// exactly one profile, created together with the account.
type Profile struct {
	BaseModel
	UserID       uuid.UUID  `json:"user" gorm:"type:uuid;uniqueIndex;not null"`
	FirstName    string     `json:"first_name" gorm:"size:100"`
	LastName     string     `json:"last_name" gorm:"size:100"`
	File         string     `json:"file" gorm:"size:512"`
	UploadedAt   *time.Time `json:"uploaded_at"`
	Location     string     `json:"location" gorm:"size:255"`
	Tel          string     `json:"tel" gorm:"size:50"`
	Description  string     `json:"description" gorm:"type:text"`
	WorkingHours string     `json:"working_hours" gorm:"size:100"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
