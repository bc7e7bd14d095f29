package handler

import (
	"io"
	"net/http"

	"container-tracker/internal/usecase/telemetry"
	"container-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
)

type TelemetryHandler struct {
	service *telemetry.Service
}

func NewTelemetryHandler(service *telemetry.Service) *TelemetryHandler {
	return &TelemetryHandler{service: service}
}

func (h *TelemetryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/ingest", h.Ingest)
	router.GET("/ingest/metrics", h.Metrics)
}

// Ingest applies one telemetry batch. The response shape is fixed for device
// firmware compatibility: {"ok": true, "inserted": n}, with a "conflicts"
// array attached only when the batch contained duplicates.
func (h *TelemetryHandler) Ingest(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Unable to read request body")
		return
	}

	result, err := h.service.Ingest(c.Request.Context(), acct, body)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{
		"ok":       true,
		"inserted": result.Inserted,
	}
	if len(result.Conflicts) > 0 {
		resp["conflicts"] = result.Conflicts
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TelemetryHandler) Metrics(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Ingest metrics retrieved successfully", h.service.Metrics())
}
