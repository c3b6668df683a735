// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Accounts & profiles
	KeyUserNotFound      = "user.not_found"
	KeyUserDeleted       = "user.deleted"
	KeyProfileNotFound   = "profile.not_found"
	KeyProfileUpdated    = "profile.updated"
	KeyAccessDenied      = "access.denied"
	KeyStaffAccessDenied = "access.staff_only"

	// Offers
	KeyOfferCreated        = "offer.created"
	KeyOfferUpdated        = "offer.updated"
	KeyOfferDeleted        = "offer.deleted"
	KeyOfferNotFound       = "offer.not_found"
	KeyOfferDetailNotFound = "offer_detail.not_found"

	// Orders
	KeyOrderCreated  = "order.created"
	KeyOrderUpdated  = "order.updated"
	KeyOrderDeleted  = "order.deleted"
	KeyOrderNotFound = "order.not_found"

	// Reviews
	KeyReviewCreated   = "review.created"
	KeyReviewUpdated   = "review.updated"
	KeyReviewDeleted   = "review.deleted"
	KeyReviewNotFound  = "review.not_found"
	KeyReviewDuplicate = "review.duplicate"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"
)
