// internal/handlers/order.go
package handlers

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gigworks/gigworks-backend/internal/i18n"
	"github.com/gigworks/gigworks-backend/internal/models"
	"github.com/gigworks/gigworks-backend/internal/permissions"
	"github.com/gigworks/gigworks-backend/internal/services"
	"github.com/gigworks/gigworks-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
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

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	order, err := h.orderService.CreateOrder(userID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "offer_detail")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, order)
}

// GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := parseContextUserID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.ListOrders(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, orders)
}

// PATCH /orders/:id
//
// The payload must contain exactly the status key; anything else fails
// even when a valid status rides along.
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := parseContextUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, "order")
		return
	}

	body, keys, ok := readBodyKeys(c)
	if !ok {
		return
	}
	if len(keys) != 1 || !keys["status"] {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"),
			"payload must contain only the status field")
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(id, userID, req.Status)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "order")
			return
		}
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAccessDenied))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, order)
}

// DELETE /orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, "order")
		return
	}

	if err := h.orderService.DeleteOrder(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "order")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderDeleted),
	})
}

// GET /orders/count/:business_id
func (h *OrderHandler) CountInProgress(c *gin.Context) {
	h.countOrders(c, h.orderService.CountInProgress, "order_count")
}

// GET /orders/completed-count/:business_id
func (h *OrderHandler) CountCompleted(c *gin.Context) {
	h.countOrders(c, h.orderService.CountCompleted, "completed_order_count")
}

func (h *OrderHandler) countOrders(c *gin.Context, count func(uuid.UUID) (int64, error), field string) {
	businessID, err := uuid.Parse(c.Param("business_id"))
	if err != nil {
		utils.NotFoundResponse(c, "user")
		return
	}

	n, err := count(businessID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "user")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{field: n})
}

// readBodyKeys returns the raw request body together with the set of
// top-level JSON keys it carries, for endpoints that allow-list fields.
func readBodyKeys(c *gin.Context) ([]byte, map[string]bool, bool) {
	lang := utils.GetLangFromContext(c)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), nil)
		return nil, nil, false
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return nil, nil, false
	}

	keys := make(map[string]bool, len(raw))
	for k := range raw {
		keys[k] = true
	}
	return body, keys, true
}
