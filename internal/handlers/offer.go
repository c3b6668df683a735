// internal/handlers/offer.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gigworks/gigworks-backend/internal/i18n"
	"github.com/gigworks/gigworks-backend/internal/permissions"
	"github.com/gigworks/gigworks-backend/internal/services"
	"github.com/gigworks/gigworks-backend/internal/utils"
)

type OfferHandler struct {
	offerService   *services.OfferService
	storageService *services.StorageService
}

func NewOfferHandler(offerService *services.OfferService, storageService *services.StorageService) *OfferHandler {
	return &OfferHandler{
		offerService:   offerService,
		storageService: storageService,
	}
}

// GET /offers
func (h *OfferHandler) ListOffers(c *gin.Context) {
	params := &services.OfferSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}
	if params.Sort != "min_price" {
		params.Sort = "updated_at"
	}

	if v := c.Query("creator_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			utils.BadRequestResponse(c, "invalid creator_id", nil)
			return
		}
		params.CreatorID = &id
	}
	if v := c.Query("min_price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			utils.BadRequestResponse(c, "invalid min_price", nil)
			return
		}
		params.MinPrice = &price
	}
	if v := c.Query("max_delivery_time"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			utils.BadRequestResponse(c, "invalid max_delivery_time", nil)
			return
		}
		params.MaxDeliveryTime = &days
	}

	result, err := h.offerService.ListOffers(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, *result)
}

// POST /offers
func (h *OfferHandler) CreateOffer(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := parseContextUserID(c)
	if !ok {
		return
	}
	userType, _ := utils.GetUserTypeFromContext(c)
	if !permissions.IsBusiness(userType) {
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAccessDenied))
		return
	}

	var req services.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	offer, err := h.offerService.CreateOffer(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, offer)
}

// GET /offers/:id
func (h *OfferHandler) GetOffer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, "offer")
		return
	}

	offer, err := h.offerService.GetOffer(id)
	if err != nil {
		utils.NotFoundResponse(c, "offer")
		return
	}

	utils.SuccessResponse(c, offer)
}

// PATCH /offers/:id
func (h *OfferHandler) UpdateOffer(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := parseContextUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, "offer")
		return
	}

	var req services.UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	offer, err := h.offerService.UpdateOffer(id, userID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "offer")
			return
		}
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAccessDenied))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, offer)
}

// DELETE /offers/:id
func (h *OfferHandler) DeleteOffer(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := parseContextUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, "offer")
		return
	}

	if err := h.offerService.DeleteOffer(id, userID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "offer")
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
		"message": i18n.T(lang, i18n.KeyOfferDeleted),
	})
}

// GET /offer-details/:id
func (h *OfferHandler) GetOfferDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, "offer_detail")
		return
	}

	detail, err := h.offerService.GetOfferDetail(id)
	if err != nil {
		utils.NotFoundResponse(c, "offer_detail")
		return
	}

	utils.SuccessResponse(c, detail)
}

// POST /offers/upload-image
func (h *OfferHandler) UploadImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if _, ok := parseContextUserID(c); !ok {
		return
	}
	userType, _ := utils.GetUserTypeFromContext(c)
	if !permissions.IsBusiness(userType) {
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAccessDenied))
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "image"), nil)
		return
	}
	defer file.Close()

	if err := h.storageService.ValidateImage(file); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileInvalidType), nil)
		return
	}

	result, err := h.storageService.UploadFile(file, header, h.storageService.OfferImageUploadOptions())
	if err != nil {
		if strings.Contains(err.Error(), "too large") {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileTooLarge), nil)
			return
		}
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed))
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"url":     result.URL,
		"key":     result.Key,
	})
}
