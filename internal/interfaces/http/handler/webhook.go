package handler

import (
	billingapp "github.com/baovietz98/smart-rental-capstone-sub001/internal/application/billing"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookHandler handles inbound bank integration callbacks
type WebhookHandler struct {
	BaseHandler
	webhookService *billingapp.WebhookService
	logger         *zap.Logger
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(webhookService *billingapp.WebhookService, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{
		webhookService: webhookService,
		logger:         logger,
	}
}

// BankTransfer ingests an incoming bank transfer notification. Unmatched
// transfers are acknowledged with 200 so the bank does not retry them.
func (h *WebhookHandler) BankTransfer(c *gin.Context) {
	var req billingapp.BankWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.webhookService.ProcessBankTransfer(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("Failed to process bank transfer",
			zap.String("transaction_id", req.TransactionID),
			zap.Error(err))
		h.HandleError(c, err)
		return
	}

	if !resp.Matched {
		h.logger.Warn("Bank transfer did not match an invoice",
			zap.String("transaction_id", req.TransactionID),
			zap.String("reason", resp.Reason))
	}

	h.Success(c, resp)
}
