package handler

import (
	"net/http"

	"container-tracker/internal/usecase/transfer"
	"container-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
)

type TransferHandler struct {
	service *transfer.Service
}

func NewTransferHandler(service *transfer.Service) *TransferHandler {
	return &TransferHandler{service: service}
}

func (h *TransferHandler) RegisterRoutes(router *gin.RouterGroup) {
	transfers := router.Group("/transfers")
	{
		transfers.POST("/start", h.Start)
		transfers.POST("/end", h.End)
		transfers.GET("/active", h.GetActive)
		transfers.POST("/scan", h.Scan)
	}
}

func (h *TransferHandler) Start(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	var req transfer.StartTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID := c.GetString("userID")
	session, err := h.service.Start(c.Request.Context(), acct, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Transfer started successfully", session)
}

func (h *TransferHandler) End(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	session, err := h.service.End(c.Request.Context(), acct)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Transfer ended successfully", session)
}

func (h *TransferHandler) GetActive(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	session, err := h.service.GetActive(c.Request.Context(), acct)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Active transfer retrieved", session)
}

func (h *TransferHandler) Scan(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	var req transfer.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	scan, err := h.service.Scan(c.Request.Context(), acct, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Container scan recorded", scan)
}
