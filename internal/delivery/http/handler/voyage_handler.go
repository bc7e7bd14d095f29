package handler

import (
	"context"
	"net/http"
	"strconv"

	"container-tracker/internal/usecase/voyage"
	"container-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VoyageHandler struct {
	service *voyage.Service
}

func NewVoyageHandler(service *voyage.Service) *VoyageHandler {
	return &VoyageHandler{service: service}
}

func (h *VoyageHandler) RegisterRoutes(router *gin.RouterGroup) {
	ships := router.Group("/ships")
	{
		ships.POST("", h.CreateShip)
		ships.GET("", h.ListShips)
	}

	voyages := router.Group("/voyages")
	{
		voyages.POST("", h.CreateVoyage)
		voyages.GET("/:id", h.GetVoyage)
		voyages.POST("/:id/depart", h.Depart)
		voyages.POST("/:id/arrive", h.Arrive)
		voyages.POST("/:id/complete", h.Complete)
		voyages.POST("/:id/containers", h.AddContainers)
		voyages.GET("/:id/trail", h.Trail)
	}
}

func (h *VoyageHandler) CreateShip(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	var req voyage.CreateShipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	ship, err := h.service.CreateShip(c.Request.Context(), acct, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Ship created successfully", ship)
}

func (h *VoyageHandler) ListShips(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	ships, err := h.service.ListShips(c.Request.Context(), acct)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ships retrieved successfully", ships)
}

func (h *VoyageHandler) CreateVoyage(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	var req voyage.CreateVoyageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.CreateVoyage(c.Request.Context(), acct, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Voyage created successfully", created)
}

func (h *VoyageHandler) GetVoyage(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	voyageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid voyage ID")
		return
	}

	detail, err := h.service.GetVoyage(c.Request.Context(), acct, voyageID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Voyage retrieved successfully", detail)
}

func (h *VoyageHandler) Depart(c *gin.Context) {
	h.transition(c, h.service.Depart, "Voyage departed")
}

func (h *VoyageHandler) Arrive(c *gin.Context) {
	h.transition(c, h.service.Arrive, "Voyage arrived")
}

func (h *VoyageHandler) Complete(c *gin.Context) {
	h.transition(c, h.service.Complete, "Voyage completed")
}

func (h *VoyageHandler) transition(c *gin.Context, fn func(context.Context, uuid.UUID, int64) (*voyage.VoyageResponse, error), message string) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	voyageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid voyage ID")
		return
	}

	updated, err := fn(c.Request.Context(), acct, voyageID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, message, updated)
}

func (h *VoyageHandler) AddContainers(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	voyageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid voyage ID")
		return
	}

	var req voyage.AddContainersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.AddContainers(c.Request.Context(), acct, voyageID, &req); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Containers added to voyage", nil)
}

func (h *VoyageHandler) Trail(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	voyageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid voyage ID")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "1000"))
	trail, err := h.service.Trail(c.Request.Context(), acct, voyageID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Voyage trail retrieved successfully", trail)
}
