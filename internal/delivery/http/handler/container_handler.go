package handler

import (
	"net/http"
	"strconv"

	"container-tracker/internal/usecase/container"
	"container-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ContainerHandler struct {
	service *container.Service
}

func NewContainerHandler(service *container.Service) *ContainerHandler {
	return &ContainerHandler{service: service}
}

func (h *ContainerHandler) RegisterRoutes(router *gin.RouterGroup) {
	containers := router.Group("/containers")
	{
		containers.POST("", h.CreateContainer)
		containers.GET("", h.ListContainers)
		containers.GET("/states", h.ListStates)
		containers.GET("/:id", h.GetContainer)
		containers.PUT("/:id", h.UpdateContainer)
		containers.DELETE("/:id", h.DeleteContainer)
		containers.GET("/:id/state", h.GetState)
	}
	router.GET("/stats/dashboard", h.Dashboard)
}

func (h *ContainerHandler) CreateContainer(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	var req container.CreateContainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.CreateContainer(c.Request.Context(), acct, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Container registered successfully", created)
}

func (h *ContainerHandler) GetContainer(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetContainer(c.Request.Context(), acct, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Container retrieved successfully", resp)
}

func (h *ContainerHandler) ListContainers(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	containers, err := h.service.ListContainers(c.Request.Context(), acct, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Containers retrieved successfully", containers)
}

func (h *ContainerHandler) UpdateContainer(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	var req container.UpdateContainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateContainer(c.Request.Context(), acct, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Container updated successfully", updated)
}

func (h *ContainerHandler) DeleteContainer(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteContainer(c.Request.Context(), acct, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Container deleted successfully", nil)
}

func (h *ContainerHandler) GetState(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	state, err := h.service.GetState(c.Request.Context(), acct, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Container state retrieved successfully", state)
}

func (h *ContainerHandler) ListStates(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	states, err := h.service.ListStates(c.Request.Context(), acct, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Container states retrieved successfully", states)
}

func (h *ContainerHandler) Dashboard(c *gin.Context) {
	acct, ok := accountID(c)
	if !ok {
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	dashboard, err := h.service.Dashboard(c.Request.Context(), acct, days)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Dashboard statistics retrieved successfully", dashboard)
}
