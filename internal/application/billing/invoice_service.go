package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/billing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/leasing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvoiceService generates and manages monthly invoices
type InvoiceService struct {
	uow          billing.UnitOfWork
	invoiceRepo  billing.InvoiceRepository
	serviceRepo  billing.ServiceRepository
	contractRepo leasing.ContractRepository
	logger       *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	uow billing.UnitOfWork,
	invoiceRepo billing.InvoiceRepository,
	serviceRepo billing.ServiceRepository,
	contractRepo leasing.ContractRepository,
	logger *zap.Logger,
) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		uow:          uow,
		invoiceRepo:  invoiceRepo,
		serviceRepo:  serviceRepo,
		contractRepo: contractRepo,
		logger:       logger,
	}
}

// Generate builds and issues the invoice for one contract and month. Rent is
// prorated when the contract starts mid-month, every unbilled reading of the
// room for that month becomes a consumption line, and enabled flat services
// are added in full. The readings are locked and marked billed in the same
// transaction as the invoice insert, so concurrent generation for the same
// contract and month cannot double-bill.
func (s *InvoiceService) Generate(ctx context.Context, req GenerateInvoiceRequest) (*InvoiceResponse, error) {
	month, err := valueobject.ParseBillingMonth(req.Month)
	if err != nil {
		return nil, err
	}

	contract, err := s.contractRepo.FindByID(ctx, req.ContractID)
	if err != nil {
		return nil, err
	}
	if !contract.CoversMonth(month) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Contract does not cover the requested month")
	}

	services, err := s.serviceRepo.FindEnabled(ctx)
	if err != nil {
		return nil, err
	}

	manual := len(req.LineItems) > 0

	var invoice *billing.Invoice
	err = s.uow.Execute(ctx, func(ctx context.Context, repos billing.RepositoryBundle) error {
		exists, err := repos.Invoices().ExistsForContractMonth(ctx, contract.ID, month)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "An invoice for this contract and month already exists")
		}

		var items billing.LineItems
		var readings []billing.MeterReading
		if manual {
			// explicit lines are a snapshot from a preview step, used verbatim
			items = itemsFromOverride(req.LineItems)
		} else {
			readings, err = repos.Readings().FindUnbilledForUpdate(ctx, contract.RoomID, month)
			if err != nil {
				return err
			}
			items, err = s.buildLineItems(contract, month, readings, services, req)
			if err != nil {
				return err
			}
		}

		invoice, err = billing.NewInvoice(contract.ID, contract.RoomID, contract.TenantID, month, items)
		if err != nil {
			return err
		}
		invoice.Note = req.Note

		code, err := repos.Invoices().NextCode(ctx)
		if err != nil {
			return err
		}
		invoice.Code = code

		if !req.Draft {
			if err := invoice.Issue(req.DueDate); err != nil {
				return err
			}
		}
		if err := repos.Invoices().Save(ctx, invoice); err != nil {
			return err
		}

		if manual {
			return s.consumeReferencedReadings(ctx, repos, invoice)
		}
		for i := range readings {
			if err := readings[i].MarkBilled(invoice.ID); err != nil {
				return err
			}
			if err := repos.Readings().SaveWithLock(ctx, &readings[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Invoice generated",
		zap.String("invoice_id", invoice.ID.String()),
		zap.Int64("code", invoice.Code),
		zap.String("contract_id", contract.ID.String()),
		zap.String("month", month.String()),
		zap.String("status", invoice.Status.String()),
		zap.String("total", invoice.Total.String()))
	return ToInvoiceResponse(invoice), nil
}

// AddExtraCharges appends ad-hoc charges or discounts to a draft invoice
// and recomputes its total
func (s *InvoiceService) AddExtraCharges(ctx context.Context, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, extra := range req.ExtraItems {
		amount := valueobject.NewMoneyVND(extra.Amount)
		itemType := billing.LineItemTypeExtra
		if amount.IsNegative() {
			itemType = billing.LineItemTypeDiscount
		}
		item := billing.LineItem{
			Type:        itemType,
			Description: extra.Description,
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   amount,
			Amount:      amount,
		}
		if err := invoice.AddLineItem(item); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("Extra charges added",
		zap.String("invoice_id", invoice.ID.String()),
		zap.Int("items", len(req.ExtraItems)),
		zap.String("total", invoice.Total.String()))
	return ToInvoiceResponse(invoice), nil
}

// Finalize issues a draft invoice, making it payable
func (s *InvoiceService) Finalize(ctx context.Context, id uuid.UUID, req FinalizeInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := invoice.Issue(req.DueDate); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("Invoice finalized",
		zap.String("invoice_id", invoice.ID.String()),
		zap.Int64("code", invoice.Code),
		zap.String("status", invoice.Status.String()))
	return ToInvoiceResponse(invoice), nil
}

// itemsFromOverride converts explicit request lines into invoice line items
func itemsFromOverride(lines []LineItemRequest) billing.LineItems {
	items := make(billing.LineItems, 0, len(lines))
	for _, line := range lines {
		items = append(items, billing.LineItem{
			Type:        billing.LineItemType(line.Type),
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   valueobject.NewMoneyVND(line.UnitPrice),
			Amount:      valueobject.NewMoneyVND(line.Amount),
			ServiceID:   line.ServiceID,
			ReadingID:   line.ReadingID,
		})
	}
	return items
}

// consumeReferencedReadings marks the readings named by explicit line items
// as billed. A reading that is already billed fails the whole generation,
// so a stale preview cannot double-bill consumption.
func (s *InvoiceService) consumeReferencedReadings(ctx context.Context, repos billing.RepositoryBundle, invoice *billing.Invoice) error {
	for _, item := range invoice.LineItems {
		if item.ReadingID == nil {
			continue
		}
		reading, err := repos.Readings().FindByID(ctx, *item.ReadingID)
		if err != nil {
			return err
		}
		if err := reading.MarkBilled(invoice.ID); err != nil {
			return err
		}
		if err := repos.Readings().SaveWithLock(ctx, reading); err != nil {
			return err
		}
	}
	return nil
}

// buildLineItems assembles the rent, consumption, flat service and extra
// lines for one invoice
func (s *InvoiceService) buildLineItems(
	contract *leasing.Contract,
	month valueobject.BillingMonth,
	readings []billing.MeterReading,
	services []billing.UtilityService,
	req GenerateInvoiceRequest,
) (billing.LineItems, error) {
	serviceByID := make(map[uuid.UUID]*billing.UtilityService, len(services))
	for i := range services {
		serviceByID[services[i].ID] = &services[i]
	}

	items := billing.LineItems{}

	// rent: an explicit prorated amount wins, then an explicit start day,
	// then proration when the contract starts inside the billing month
	daysInMonth := month.Days()
	startDay := contract.StartDayInMonth(month)
	if req.StartDay != nil {
		if *req.StartDay > daysInMonth {
			return nil, shared.NewDomainError("INVALID_INPUT",
				fmt.Sprintf("Start day %d does not exist in %s", *req.StartDay, month))
		}
		startDay = *req.StartDay
	}

	rentAmount := contract.Price
	description := "Room rent"
	switch {
	case req.ProratedRent != nil:
		if req.ProratedRent.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Prorated rent cannot be negative")
		}
		rentAmount = valueobject.NewMoneyVND(*req.ProratedRent)
		description = "Room rent (prorated)"
	case startDay > 1:
		occupied := daysInMonth - startDay + 1
		prorated, err := contract.Price.Prorate(occupied, daysInMonth)
		if err != nil {
			return nil, err
		}
		rentAmount = prorated
		description = fmt.Sprintf("Room rent (%d/%d days)", occupied, daysInMonth)
	}
	items = append(items, billing.LineItem{
		Type:        billing.LineItemTypeRent,
		Description: description,
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   contract.Price,
		Amount:      rentAmount,
	})

	// one consumption line per unbilled reading, charged at the rate
	// snapshotted when the reading was recorded
	for i := range readings {
		reading := &readings[i]
		service, ok := serviceByID[reading.ServiceID]
		if !ok {
			return nil, shared.NewDomainError("INVALID_STATE",
				fmt.Sprintf("Reading %s references a disabled or missing service", reading.ID))
		}
		serviceID := service.ID
		readingID := reading.ID
		items = append(items, billing.LineItem{
			Type:        billing.LineItemTypeService,
			Description: fmt.Sprintf("%s (%d %s)", service.Name, reading.Usage, service.Unit),
			Quantity:    decimal.NewFromInt(reading.Usage),
			UnitPrice:   reading.UnitPrice,
			Amount:      reading.TotalCost,
			ServiceID:   &serviceID,
			ReadingID:   &readingID,
		})
	}

	// flat fees
	for i := range services {
		service := &services[i]
		if service.IsMetered() {
			continue
		}
		serviceID := service.ID
		items = append(items, billing.LineItem{
			Type:        billing.LineItemTypeService,
			Description: service.Name,
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   service.UnitPrice,
			Amount:      service.UnitPrice,
			ServiceID:   &serviceID,
		})
	}

	// ad-hoc charges and discounts
	for _, extra := range req.ExtraItems {
		amount := valueobject.NewMoneyVND(extra.Amount)
		itemType := billing.LineItemTypeExtra
		if amount.IsNegative() {
			itemType = billing.LineItemTypeDiscount
		}
		items = append(items, billing.LineItem{
			Type:        itemType,
			Description: extra.Description,
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   amount,
			Amount:      amount,
		})
	}

	return items, nil
}

// Get returns one invoice
func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// GetByCode returns one invoice by its human-facing code
func (s *InvoiceService) GetByCode(ctx context.Context, code int64) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// List returns invoices matching the filter
func (s *InvoiceService) List(ctx context.Context, filter billing.InvoiceFilter) ([]InvoiceResponse, int64, error) {
	invoices, total, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, *ToInvoiceResponse(&invoices[i]))
	}
	return responses, total, nil
}

// Cancel voids an unpaid invoice and releases its readings for regeneration
func (s *InvoiceService) Cancel(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	var invoice *billing.Invoice
	err := s.uow.Execute(ctx, func(ctx context.Context, repos billing.RepositoryBundle) error {
		var err error
		invoice, err = repos.Invoices().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := invoice.Cancel(); err != nil {
			return err
		}
		if err := repos.Invoices().SaveWithLock(ctx, invoice); err != nil {
			return err
		}

		roomID := invoice.RoomID
		readings, _, err := repos.Readings().FindAll(ctx, billing.ReadingFilter{
			Filter: shared.Filter{Page: 1, PageSize: 1000},
			RoomID: &roomID,
			Month:  &invoice.Month,
		})
		if err != nil {
			return err
		}
		for i := range readings {
			if readings[i].InvoiceID == nil || *readings[i].InvoiceID != invoice.ID {
				continue
			}
			readings[i].Unbill()
			if err := repos.Readings().SaveWithLock(ctx, &readings[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Invoice cancelled",
		zap.String("invoice_id", invoice.ID.String()),
		zap.Int64("code", invoice.Code))
	return ToInvoiceResponse(invoice), nil
}

// SweepOverdue transitions unpaid and partial invoices past their due date
// to OVERDUE. Returns the number of invoices transitioned.
func (s *InvoiceService) SweepOverdue(ctx context.Context, now time.Time) (int, error) {
	transitioned := 0
	for _, status := range []billing.InvoiceStatus{billing.InvoiceStatusUnpaid, billing.InvoiceStatusPartial} {
		status := status
		invoices, _, err := s.invoiceRepo.FindAll(ctx, billing.InvoiceFilter{
			Filter: shared.Filter{Page: 1, PageSize: 1000},
			Status: &status,
		})
		if err != nil {
			return transitioned, err
		}

		for i := range invoices {
			invoice := &invoices[i]
			if invoice.DueDate == nil || !now.After(*invoice.DueDate) {
				continue
			}
			if err := invoice.MarkOverdue(now); err != nil {
				continue
			}
			if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
				if errors.Is(err, shared.ErrConcurrencyConflict) {
					continue
				}
				return transitioned, err
			}
			transitioned++
		}
	}

	if transitioned > 0 {
		s.logger.Info("Overdue sweep completed", zap.Int("transitioned", transitioned))
	}
	return transitioned, nil
}
