// internal/handlers/stats.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gigworks/gigworks-backend/internal/services"
	"github.com/gigworks/gigworks-backend/internal/utils"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GET /base-info
func (h *StatsHandler) GetBaseInfo(c *gin.Context) {
	info, err := h.statsService.GetBaseInfo()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, info)
}
