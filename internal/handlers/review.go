// internal/handlers/review.go
package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gigworks/gigworks-backend/internal/i18n"
	"github.com/gigworks/gigworks-backend/internal/permissions"
	"github.com/gigworks/gigworks-backend/internal/services"
	"github.com/gigworks/gigworks-backend/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// POST /reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := parseContextUserID(c)
	if !ok {
		return
	}
	userType, _ := utils.GetUserTypeFromContext(c)
	if !permissions.IsCustomer(userType) {
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAccessDenied))
		return
	}

	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	review, err := h.reviewService.CreateReview(userID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyReviewDuplicate))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, review)
}

// GET /reviews
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	params := &services.ReviewSearchParams{}

	if v := c.Query("business_user_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			utils.BadRequestResponse(c, "invalid business_user_id", nil)
			return
		}
		params.BusinessUserID = &id
	}
	if v := c.Query("reviewer_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			utils.BadRequestResponse(c, "invalid reviewer_id", nil)
			return
		}
		params.ReviewerID = &id
	}

	params.PaginationParams = utils.GetPaginationParams(c)

	reviews, err := h.reviewService.ListReviews(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, reviews)
}

// PATCH /reviews/:id
//
// Only rating and description may appear in the payload.
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := parseContextUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, "review")
		return
	}

	body, keys, ok := readBodyKeys(c)
	if !ok {
		return
	}
	for key := range keys {
		if key != "rating" && key != "description" {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"),
				"payload may only contain rating and description")
			return
		}
	}

	var req services.UpdateReviewRequest
	if err := json.Unmarshal(body, &req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	review, err := h.reviewService.UpdateReview(id, userID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "review")
			return
		}
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAccessDenied))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, review)
}

// DELETE /reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := parseContextUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, "review")
		return
	}

	if err := h.reviewService.DeleteReview(id, userID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "review")
			return
		}
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAccessDenied))
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReviewDeleted),
	})
}
