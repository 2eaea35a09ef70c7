package billing

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/billing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// invoiceRefPattern extracts the invoice reference from free-form transfer
// content, e.g. "NGUYEN VAN A CHUYEN TIEN HD50" matches invoice code 50.
var invoiceRefPattern = regexp.MustCompile(`(?i)HD(\d+)`)

// WebhookService matches incoming bank transfers to invoices. Transfers are
// identified by the bank-side transaction id, so redelivered notifications
// are acknowledged without applying the payment twice.
type WebhookService struct {
	uow             billing.UnitOfWork
	transactionRepo billing.TransactionRepository
	logger          *zap.Logger
}

// NewWebhookService creates a new WebhookService
func NewWebhookService(uow billing.UnitOfWork, transactionRepo billing.TransactionRepository, logger *zap.Logger) *WebhookService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookService{
		uow:             uow,
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// ProcessBankTransfer handles one bank transfer notification. Unmatched
// transfers are stored without an invoice for manual reconciliation and
// reported, not failed, so the bank integration does not retry them
// forever.
func (s *WebhookService) ProcessBankTransfer(ctx context.Context, req BankWebhookRequest) (*BankWebhookResponse, error) {
	amount := valueobject.NewMoneyVND(req.Amount)
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_AMOUNT", "Transfer amount must be positive")
	}

	existing, err := s.transactionRepo.FindByExternalRef(ctx, req.TransactionID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		s.logger.Info("Bank transfer already processed",
			zap.String("transaction_id", req.TransactionID),
			zap.Bool("matched", existing.IsMatched()))
		if existing.IsMatched() {
			return &BankWebhookResponse{
				Matched:          true,
				AlreadyProcessed: true,
				InvoiceID:        existing.InvoiceID,
			}, nil
		}
		return &BankWebhookResponse{
			Matched:          false,
			AlreadyProcessed: true,
			Reason:           "transfer is already stored for manual reconciliation",
		}, nil
	}

	paidAt := time.Now()
	if req.TransferredAt != nil {
		paidAt = *req.TransferredAt
	}

	match := invoiceRefPattern.FindStringSubmatch(req.Content)
	if match == nil {
		return s.storeUnmatched(ctx, req, amount, paidAt, "no invoice reference in transfer content")
	}

	code, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return s.storeUnmatched(ctx, req, amount, paidAt, "invoice reference out of range")
	}

	var invoice *billing.Invoice
	err = s.uow.Execute(ctx, func(ctx context.Context, repos billing.RepositoryBundle) error {
		var err error
		invoice, err = repos.Invoices().FindByCode(ctx, code)
		if err != nil {
			return err
		}

		if err := invoice.RecordPayment(amount); err != nil {
			return err
		}

		tx, err := billing.NewPaymentTransaction(invoice.ID, amount, billing.PaymentMethodBankTransfer, billing.PaymentSourceWebhook, paidAt)
		if err != nil {
			return err
		}
		tx.WithExternalRef(req.TransactionID, req.Content)

		if err := repos.Invoices().SaveWithLock(ctx, invoice); err != nil {
			return err
		}
		return repos.Transactions().Save(ctx, tx)
	})
	if err != nil {
		var derr *shared.DomainError
		if errors.As(err, &derr) {
			s.logger.Warn("Bank transfer could not be applied",
				zap.String("transaction_id", req.TransactionID),
				zap.Int64("invoice_code", code),
				zap.String("code", derr.Code),
				zap.String("reason", derr.Message))
			return s.storeUnmatched(ctx, req, amount, paidAt, derr.Message)
		}
		return nil, err
	}

	s.logger.Info("Bank transfer applied",
		zap.String("transaction_id", req.TransactionID),
		zap.Int64("invoice_code", code),
		zap.String("amount", amount.String()),
		zap.String("invoice_status", invoice.Status.String()))
	return &BankWebhookResponse{
		Matched:       true,
		InvoiceID:     &invoice.ID,
		InvoiceCode:   &invoice.Code,
		InvoiceStatus: invoice.Status.String(),
	}, nil
}

// storeUnmatched keeps the transfer without an invoice so the money can be
// reconciled manually, then acknowledges it
func (s *WebhookService) storeUnmatched(ctx context.Context, req BankWebhookRequest, amount valueobject.Money, paidAt time.Time, reason string) (*BankWebhookResponse, error) {
	tx, err := billing.NewUnmatchedTransaction(amount, req.TransactionID, req.Content, paidAt)
	if err != nil {
		return nil, err
	}
	if err := s.transactionRepo.Save(ctx, tx); err != nil {
		return nil, err
	}

	s.logger.Warn("Bank transfer stored unmatched",
		zap.String("transaction_id", req.TransactionID),
		zap.String("amount", amount.String()),
		zap.String("reason", reason))
	return &BankWebhookResponse{
		Matched: false,
		Reason:  reason,
	}, nil
}
