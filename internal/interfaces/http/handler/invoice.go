package handler

import (
	"errors"
	"io"
	"strconv"

	billingapp "github.com/baovietz98/smart-rental-capstone-sub001/internal/application/billing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/billing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// ListInvoicesQuery holds invoice list filters
type ListInvoicesQuery struct {
	dto.ListRequest
	ContractID string `form:"contract_id" binding:"omitempty,uuid"`
	RoomID     string `form:"room_id" binding:"omitempty,uuid"`
	TenantID   string `form:"tenant_id" binding:"omitempty,uuid"`
	Month      string `form:"month" binding:"omitempty,billmonth"`
	Status     string `form:"status" binding:"omitempty,oneof=DRAFT UNPAID PARTIAL PAID OVERDUE CANCELLED"`
}

// Generate creates the monthly invoice for a contract
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req billingapp.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.Generate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// Get returns an invoice by ID
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.invoiceService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// GetByCode returns an invoice by its sequential code
func (h *InvoiceHandler) GetByCode(c *gin.Context) {
	code, err := strconv.ParseInt(c.Param("code"), 10, 64)
	if err != nil || code <= 0 {
		h.BadRequest(c, "Invalid invoice code")
		return
	}

	invoice, err := h.invoiceService.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// List returns a paginated list of invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	var query ListInvoicesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := billing.InvoiceFilter{Filter: toFilter(query.ListRequest)}
	if query.ContractID != "" {
		contractID, err := uuid.Parse(query.ContractID)
		if err != nil {
			h.BadRequest(c, "Invalid contract ID format")
			return
		}
		filter.ContractID = &contractID
	}
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
	if query.Month != "" {
		month, err := valueobject.ParseBillingMonth(query.Month)
		if err != nil {
			h.BadRequest(c, "Invalid month format, expected MM-YYYY")
			return
		}
		filter.Month = &month
	}
	if query.Status != "" {
		status := billing.InvoiceStatus(query.Status)
		filter.Status = &status
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	query.Normalize()
	h.SuccessWithMeta(c, invoices, total, query.Page, query.PageSize)
}

// Update appends extra charges or discounts to a draft invoice
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req billingapp.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.AddExtraCharges(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Finalize issues a draft invoice and makes it payable
func (h *InvoiceHandler) Finalize(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	// the body is optional; finalizing without one leaves the due date unset
	var req billingapp.FinalizeInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.Finalize(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Cancel voids an invoice and releases its billed readings
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.invoiceService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}
