package billing

import (
	"context"
	"time"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/billing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService applies payments to invoices. Every applied payment writes
// a transaction record and updates the invoice in the same database
// transaction.
type PaymentService struct {
	uow             billing.UnitOfWork
	transactionRepo billing.TransactionRepository
	logger          *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(uow billing.UnitOfWork, transactionRepo billing.TransactionRepository, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		uow:             uow,
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// Record applies a manual payment to an invoice
func (s *PaymentService) Record(ctx context.Context, invoiceID uuid.UUID, req RecordPaymentRequest) (*TransactionResponse, error) {
	amount := valueobject.NewMoneyVND(req.Amount)
	paidAt := time.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	var tx *billing.PaymentTransaction
	err := s.uow.Execute(ctx, func(ctx context.Context, repos billing.RepositoryBundle) error {
		invoice, err := repos.Invoices().FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}

		if err := invoice.RecordPayment(amount); err != nil {
			return err
		}

		tx, err = billing.NewPaymentTransaction(invoice.ID, amount, billing.PaymentMethod(req.Method), billing.PaymentSourceManual, paidAt)
		if err != nil {
			return err
		}
		if req.RecordedBy != nil {
			tx.WithRecordedBy(*req.RecordedBy)
		}

		if err := repos.Invoices().SaveWithLock(ctx, invoice); err != nil {
			return err
		}
		return repos.Transactions().Save(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment recorded",
		zap.String("transaction_id", tx.ID.String()),
		zap.String("invoice_id", invoiceID.String()),
		zap.String("amount", amount.String()),
		zap.String("method", req.Method))
	return ToTransactionResponse(tx), nil
}

// ListByInvoice returns the payment history of one invoice
func (s *PaymentService) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]TransactionResponse, error) {
	transactions, err := s.transactionRepo.FindByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	responses := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, *ToTransactionResponse(&transactions[i]))
	}
	return responses, nil
}

// Link attaches an unmatched bank transfer to an invoice and applies its
// amount as a payment. Linking and the invoice update happen in the same
// database transaction.
func (s *PaymentService) Link(ctx context.Context, transactionID, invoiceID uuid.UUID) (*TransactionResponse, error) {
	var tx *billing.PaymentTransaction
	err := s.uow.Execute(ctx, func(ctx context.Context, repos billing.RepositoryBundle) error {
		var err error
		tx, err = repos.Transactions().FindByID(ctx, transactionID)
		if err != nil {
			return err
		}

		invoice, err := repos.Invoices().FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}

		if err := invoice.RecordPayment(tx.Amount); err != nil {
			return err
		}
		if err := tx.LinkToInvoice(invoice.ID); err != nil {
			return err
		}

		if err := repos.Invoices().SaveWithLock(ctx, invoice); err != nil {
			return err
		}
		return repos.Transactions().Update(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transaction linked to invoice",
		zap.String("transaction_id", transactionID.String()),
		zap.String("invoice_id", invoiceID.String()),
		zap.String("amount", tx.Amount.String()))
	return ToTransactionResponse(tx), nil
}

// ListUnmatched returns bank transfers waiting for manual reconciliation
func (s *PaymentService) ListUnmatched(ctx context.Context) ([]TransactionResponse, error) {
	transactions, err := s.transactionRepo.FindUnmatched(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, *ToTransactionResponse(&transactions[i]))
	}
	return responses, nil
}

// List returns payment transactions matching the filter
func (s *PaymentService) List(ctx context.Context, filter shared.Filter) ([]TransactionResponse, int64, error) {
	transactions, total, err := s.transactionRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, *ToTransactionResponse(&transactions[i]))
	}
	return responses, total, nil
}
