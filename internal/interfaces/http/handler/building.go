package handler

import (
	propertyapp "github.com/baovietz98/smart-rental-capstone-sub001/internal/application/property"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// BuildingHandler handles building endpoints
type BuildingHandler struct {
	BaseHandler
	buildingService *propertyapp.BuildingService
}

// NewBuildingHandler creates a new BuildingHandler
func NewBuildingHandler(buildingService *propertyapp.BuildingService) *BuildingHandler {
	return &BuildingHandler{buildingService: buildingService}
}

// Create registers a new building
func (h *BuildingHandler) Create(c *gin.Context) {
	var req propertyapp.CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	building, err := h.buildingService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, building)
}

// Get returns a building by ID
func (h *BuildingHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid building ID format")
		return
	}

	building, err := h.buildingService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, building)
}

// List returns a paginated list of buildings
func (h *BuildingHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	buildings, total, err := h.buildingService.List(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	req.Normalize()
	h.SuccessWithMeta(c, buildings, total, req.Page, req.PageSize)
}

// Update changes a building's details
func (h *BuildingHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid building ID format")
		return
	}

	var req propertyapp.UpdateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	building, err := h.buildingService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, building)
}

// Delete removes a building without rooms
func (h *BuildingHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid building ID format")
		return
	}

	if err := h.buildingService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
