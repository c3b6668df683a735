// internal/handlers/profile.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gigworks/gigworks-backend/internal/i18n"
	"github.com/gigworks/gigworks-backend/internal/models"
	"github.com/gigworks/gigworks-backend/internal/services"
	"github.com/gigworks/gigworks-backend/internal/utils"
)

type ProfileHandler struct {
	profileService *services.ProfileService
	storageService *services.StorageService
}

func NewProfileHandler(profileService *services.ProfileService, storageService *services.StorageService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		storageService: storageService,
	}
}

// GET /profile/:user_id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		utils.NotFoundResponse(c, "profile")
		return
	}

	profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		utils.NotFoundResponse(c, "profile")
		return
	}

	utils.SuccessResponse(c, profile)
}

// PATCH /profile/:user_id
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	callerID, ok := parseContextUserID(c)
	if !ok {
		return
	}

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		utils.NotFoundResponse(c, "profile")
		return
	}

	// Only the owner edits their profile
	if callerID != userID {
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAccessDenied))
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	profile, err := h.profileService.UpdateProfile(userID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "profile")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProfileUpdated),
		"profile": profile,
	})
}

// GET /profiles/business
func (h *ProfileHandler) ListBusinessProfiles(c *gin.Context) {
	h.listProfiles(c, models.UserTypeBusiness)
}

// GET /profiles/customer
func (h *ProfileHandler) ListCustomerProfiles(c *gin.Context) {
	h.listProfiles(c, models.UserTypeCustomer)
}

func (h *ProfileHandler) listProfiles(c *gin.Context, userType models.UserType) {
	profiles, err := h.profileService.ListProfiles(userType)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, profiles)
}

// POST /profile/upload-avatar
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := parseContextUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "file"), nil)
		return
	}
	defer file.Close()

	if err := h.storageService.ValidateImage(file); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileInvalidType), nil)
		return
	}

	result, err := h.storageService.UploadFile(file, header, h.storageService.AvatarUploadOptions())
	if err != nil {
		if strings.Contains(err.Error(), "too large") {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileTooLarge), nil)
			return
		}
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed))
		return
	}

	profile, err := h.profileService.SetAvatar(userID, result.Key)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"url":     result.URL,
		"profile": profile,
	})
}
