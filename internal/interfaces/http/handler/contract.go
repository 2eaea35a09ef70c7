package handler

import (
	leasingapp "github.com/baovietz98/smart-rental-capstone-sub001/internal/application/leasing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/leasing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContractHandler handles rental contract endpoints
type ContractHandler struct {
	BaseHandler
	contractService *leasingapp.ContractService
}

// NewContractHandler creates a new ContractHandler
func NewContractHandler(contractService *leasingapp.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// ListContractsQuery holds contract list filters
type ListContractsQuery struct {
	dto.ListRequest
	RoomID   string `form:"room_id" binding:"omitempty,uuid"`
	TenantID string `form:"tenant_id" binding:"omitempty,uuid"`
	IsActive *bool  `form:"is_active"`
}

// Create signs a new contract for a room, moving it to rented
func (h *ContractHandler) Create(c *gin.Context) {
	var req leasingapp.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contract, err := h.contractService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, contract)
}

// Get returns a contract by ID
func (h *ContractHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}

	contract, err := h.contractService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, contract)
}

// List returns a paginated list of contracts
func (h *ContractHandler) List(c *gin.Context) {
	var query ListContractsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := leasing.ContractFilter{Filter: toFilter(query.ListRequest)}
	if query.RoomID != "" {
		roomID, err := uuid.Parse(query.RoomID)
		if err != nil {
			h.BadRequest(c, "Invalid room ID format")
			return
		}
		filter.RoomID = &roomID
	}
	if query.TenantID != "" {
		tenantID, err := uuid.Parse(query.TenantID)
		if err != nil {
			h.BadRequest(c, "Invalid tenant ID format")
			return
		}
		filter.TenantID = &tenantID
	}
	filter.IsActive = query.IsActive

	contracts, total, err := h.contractService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	query.Normalize()
	h.SuccessWithMeta(c, contracts, total, query.Page, query.PageSize)
}

// Update changes the terms of an active contract
func (h *ContractHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}

	var req leasingapp.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contract, err := h.contractService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, contract)
}

// Terminate ends an active contract and frees the room
func (h *ContractHandler) Terminate(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}

	var req leasingapp.TerminateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contract, err := h.contractService.Terminate(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, contract)
}
