// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("username", validateUsername)
	validate.RegisterValidation("user_role", validateUserRole)
	validate.RegisterValidation("offer_type", validateOfferType)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateUsername(fl validator.FieldLevel) bool {
	username := fl.Field().String()

	// Username should be alphanumeric and underscores, 3-150 characters
	if len(username) < 3 || len(username) > 150 {
		return false
	}

	matched, _ := regexp.MatchString("^[a-zA-Z0-9_]+$", username)
	return matched
}

func validateUserRole(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	return role == "business" || role == "customer"
}

func validateOfferType(fl validator.FieldLevel) bool {
	offerType := fl.Field().String()
	return offerType == "basic" || offerType == "standard" || offerType == "premium"
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "username":
		return "Username must be 3-150 characters and contain only letters, numbers, and underscores"
	case "user_role":
		return "Type must be either 'business' or 'customer'"
	case "offer_type":
		return "Offer type must be one of 'basic', 'standard' or 'premium'"
	default:
		return e.Field() + " is invalid"
	}
}
