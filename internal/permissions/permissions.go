// internal/permissions/permissions.go

// Package permissions holds the access predicates used by the handlers.
// Each predicate is a pure function over the caller's claims and the
// resource in question; endpoints compose them after authentication.
package permissions

import (
	"github.com/google/uuid"

	"github.com/gigworks/gigworks-backend/internal/models"
)

func IsBusiness(userType string) bool {
	return userType == string(models.UserTypeBusiness)
}

func IsCustomer(userType string) bool {
	return userType == string(models.UserTypeCustomer)
}

// IsOfferOwner reports whether the caller owns the offer.
func IsOfferOwner(userID uuid.UUID, offer *models.Offer) bool {
	return offer != nil && offer.UserID == userID
}

// IsOrderBusinessParty reports whether the caller is the business side of
// the order, as snapshotted at creation time.
func IsOrderBusinessParty(userID uuid.UUID, order *models.Order) bool {
	return order != nil && order.BusinessUserID == userID
}

// IsReviewer reports whether the caller wrote the review.
func IsReviewer(userID uuid.UUID, review *models.Review) bool {
	return review != nil && review.ReviewerID == userID
}
