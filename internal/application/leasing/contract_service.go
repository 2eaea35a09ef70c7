package leasing

import (
	"context"
	"errors"

	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/leasing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/property"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContractService handles the lease lifecycle. Signing a contract rents the
// room; terminating it frees the room again. Both writes run in one unit of
// work so a contract is never persisted against a stale room status.
type ContractService struct {
	uow          leasing.UnitOfWork
	contractRepo leasing.ContractRepository
	tenantRepo   leasing.TenantRepository
	roomRepo     property.RoomRepository
	logger       *zap.Logger
}

// NewContractService creates a new ContractService
func NewContractService(
	uow leasing.UnitOfWork,
	contractRepo leasing.ContractRepository,
	tenantRepo leasing.TenantRepository,
	roomRepo property.RoomRepository,
	logger *zap.Logger,
) *ContractService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContractService{
		uow:          uow,
		contractRepo: contractRepo,
		tenantRepo:   tenantRepo,
		roomRepo:     roomRepo,
		logger:       logger,
	}
}

// Create signs a new contract. The room must be available and must not
// already carry an active contract; a partial unique index on the contracts
// table backs this check against races.
func (s *ContractService) Create(ctx context.Context, req CreateContractRequest) (*ContractResponse, error) {
	room, err := s.roomRepo.FindByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_ROOM", "Room not found")
		}
		return nil, err
	}

	if _, err := s.tenantRepo.FindByID(ctx, req.TenantID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_TENANT", "Tenant not found")
		}
		return nil, err
	}

	active, err := s.contractRepo.ExistsActiveForRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, shared.NewDomainError("CONFLICT", "Room already has an active contract")
	}

	contract, err := leasing.NewContract(req.RoomID, req.TenantID, req.StartDate, req.EndDate,
		valueobject.NewMoneyVND(req.Price), valueobject.NewMoneyVND(req.PaidDeposit))
	if err != nil {
		return nil, err
	}
	contract.Note = req.Note

	if err := room.MarkRented(); err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(ctx context.Context, repos leasing.RepositoryBundle) error {
		if err := repos.Contracts().Save(ctx, contract); err != nil {
			return err
		}
		return repos.Rooms().SaveWithLock(ctx, room)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Contract signed",
		zap.String("contract_id", contract.ID.String()),
		zap.String("room_id", req.RoomID.String()),
		zap.String("tenant_id", req.TenantID.String()))
	return ToContractResponse(contract), nil
}

// Get returns one contract
func (s *ContractService) Get(ctx context.Context, id uuid.UUID) (*ContractResponse, error) {
	contract, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToContractResponse(contract), nil
}

// List returns contracts matching the filter
func (s *ContractService) List(ctx context.Context, filter leasing.ContractFilter) ([]ContractResponse, int64, error) {
	contracts, total, err := s.contractRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ContractResponse, 0, len(contracts))
	for i := range contracts {
		responses = append(responses, *ToContractResponse(&contracts[i]))
	}
	return responses, total, nil
}

// Update changes the terms of an active contract
func (s *ContractService) Update(ctx context.Context, id uuid.UUID, req UpdateContractRequest) (*ContractResponse, error) {
	contract, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := contract.UpdateTerms(valueobject.NewMoneyVND(req.Price), valueobject.NewMoneyVND(req.PaidDeposit), req.EndDate, req.Note); err != nil {
		return nil, err
	}

	if err := s.contractRepo.SaveWithLock(ctx, contract); err != nil {
		return nil, err
	}
	return ToContractResponse(contract), nil
}

// Terminate ends a contract and frees the room. Unpaid invoices on the
// contract stay payable.
func (s *ContractService) Terminate(ctx context.Context, id uuid.UUID, req TerminateContractRequest) (*ContractResponse, error) {
	contract, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := contract.Terminate(req.TerminatedAt); err != nil {
		return nil, err
	}

	room, err := s.roomRepo.FindByID(ctx, contract.RoomID)
	if err != nil {
		return nil, err
	}
	room.MarkAvailable()

	err = s.uow.Execute(ctx, func(ctx context.Context, repos leasing.RepositoryBundle) error {
		if err := repos.Contracts().SaveWithLock(ctx, contract); err != nil {
			return err
		}
		return repos.Rooms().SaveWithLock(ctx, room)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Contract terminated",
		zap.String("contract_id", contract.ID.String()),
		zap.String("room_id", contract.RoomID.String()))
	return ToContractResponse(contract), nil
}
