package handler

import (
	billingapp "github.com/baovietz98/smart-rental-capstone-sub001/internal/application/billing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ServiceHandler handles utility service endpoints
type ServiceHandler struct {
	BaseHandler
	utilityService *billingapp.UtilityServiceService
}

// NewServiceHandler creates a new ServiceHandler
func NewServiceHandler(utilityService *billingapp.UtilityServiceService) *ServiceHandler {
	return &ServiceHandler{utilityService: utilityService}
}

// Create registers a new utility service
func (h *ServiceHandler) Create(c *gin.Context) {
	var req billingapp.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	service, err := h.utilityService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, service)
}

// Get returns a utility service by ID
func (h *ServiceHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid service ID format")
		return
	}

	service, err := h.utilityService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, service)
}

// List returns a paginated list of utility services
func (h *ServiceHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	services, total, err := h.utilityService.List(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	req.Normalize()
	h.SuccessWithMeta(c, services, total, req.Page, req.PageSize)
}

// Update changes a utility service's name and pricing
func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid service ID format")
		return
	}

	var req billingapp.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	service, err := h.utilityService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, service)
}

// Enable includes the service in future invoice generation
func (h *ServiceHandler) Enable(c *gin.Context) {
	h.setEnabled(c, true)
}

// Disable excludes the service from future invoice generation
func (h *ServiceHandler) Disable(c *gin.Context) {
	h.setEnabled(c, false)
}

func (h *ServiceHandler) setEnabled(c *gin.Context, enabled bool) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid service ID format")
		return
	}

	service, err := h.utilityService.SetEnabled(c.Request.Context(), id, enabled)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, service)
}
