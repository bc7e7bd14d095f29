package handler

import (
	"net/http"

	"container-tracker/internal/usecase/alert"
	"container-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AlertHandler struct {
	service *alert.Service
}

func NewAlertHandler(service *alert.Service) *AlertHandler {
	return &AlertHandler{service: service}
}

func (h *AlertHandler) RegisterRoutes(router *gin.RouterGroup) {
	alerts := router.Group("/alerts")
	{
		alerts.GET("", h.ListAlerts)
		alerts.POST("/:id/ack", h.Acknowledge)
		alerts.DELETE("/:id", h.Delete)
	}
}

func (h *AlertHandler) ListAlerts(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	var req alert.ListAlertsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	alerts, err := h.service.ListAlerts(c.Request.Context(), acct, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Alerts retrieved successfully", alerts)
}

func (h *AlertHandler) Acknowledge(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid alert ID")
		return
	}

	var userID *string
	if v, exists := c.Get("userID"); exists {
		if s, ok := v.(string); ok && s != "" {
			userID = &s
		}
	}

	acked, err := h.service.Acknowledge(c.Request.Context(), acct, alertID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Alert acknowledged successfully", acked)
}

func (h *AlertHandler) Delete(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid alert ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), acct, alertID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Alert deleted successfully", nil)
}
