package handler

import (
	billingapp "github.com/baovietz98/smart-rental-capstone-sub001/internal/application/billing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment transaction endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *billingapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Record applies a manual payment to an invoice
func (h *PaymentHandler) Record(c *gin.Context) {
	invoiceID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req billingapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	// attribute the payment to the operator entering it
	if userID, err := getUserID(c); err == nil {
		req.RecordedBy = &userID
	}

	transaction, err := h.paymentService.Record(c.Request.Context(), invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, transaction)
}

// ListByInvoice returns all payments applied to an invoice
func (h *PaymentHandler) ListByInvoice(c *gin.Context) {
	invoiceID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	transactions, err := h.paymentService.ListByInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, transactions)
}

// ListTransactionsQuery holds transaction list filters
type ListTransactionsQuery struct {
	dto.ListRequest
	Unmatched bool `form:"unmatched"`
}

// List returns payment transactions; unmatched=true narrows it to bank
// transfers waiting for manual reconciliation
func (h *PaymentHandler) List(c *gin.Context) {
	var query ListTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if query.Unmatched {
		transactions, err := h.paymentService.ListUnmatched(c.Request.Context())
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, transactions)
		return
	}

	transactions, total, err := h.paymentService.List(c.Request.Context(), toFilter(query.ListRequest))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	query.Normalize()
	h.SuccessWithMeta(c, transactions, total, query.Page, query.PageSize)
}

// Link attaches an unmatched bank transfer to an invoice
func (h *PaymentHandler) Link(c *gin.Context) {
	transactionID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	var req billingapp.LinkTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	transaction, err := h.paymentService.Link(c.Request.Context(), transactionID, req.InvoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, transaction)
}
