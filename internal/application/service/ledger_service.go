package service

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/felixotieno/haraka-api/internal/domain/entity"
	"github.com/felixotieno/haraka-api/internal/domain/enum"
	"github.com/felixotieno/haraka-api/internal/domain/repository"
	"github.com/felixotieno/haraka-api/pkg/apperror"
	"github.com/felixotieno/haraka-api/pkg/pagination"
	"github.com/felixotieno/haraka-api/pkg/utils"
)

// LedgerService handles ledger entry recording and read-side queries
type LedgerService struct {
	ledgerRepo repository.LedgerRepository
	driverRepo repository.DriverRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(ledgerRepo repository.LedgerRepository, driverRepo repository.DriverRepository) *LedgerService {
	return &LedgerService{
		ledgerRepo: ledgerRepo,
		driverRepo: driverRepo,
	}
}

// CreateEntryInput represents the create ledger entry input. Amount is in
// decimal currency units as received from the API.
type CreateEntryInput struct {
	DriverID    uuid.UUID
	OrderID     *uuid.UUID
	Type        enum.EntryType
	Amount      float64
	Description string
	Metadata    map[string]interface{}
}

// CreateEntry appends a manual entry to a driver's ledger. Settlement-type
// entries cannot be created here; they only come into existence as part of a
// settlement transaction.
func (s *LedgerService) CreateEntry(ctx context.Context, input *CreateEntryInput) (*entity.LedgerEntry, error) {
	if !input.Type.IsValid() {
		return nil, apperror.NewValidationError("Invalid entry type")
	}
	if input.Type == enum.EntryTypeSettlement {
		return nil, apperror.NewValidationError("Settlement entries are created by the settlement engine, not directly")
	}
	if input.Description == "" {
		return nil, apperror.NewValidationError("Description is required")
	}
	if math.IsNaN(input.Amount) || math.IsInf(input.Amount, 0) {
		return nil, apperror.NewValidationError("Amount must be a finite number")
	}

	amount := utils.ToCents(input.Amount)
	if amount == 0 {
		return nil, apperror.NewValidationError("Amount must be non-zero")
	}
	switch input.Type {
	case enum.EntryTypeEarning:
		if amount < 0 {
			return nil, apperror.NewValidationError("Earning amount must be positive")
		}
	case enum.EntryTypeFee, enum.EntryTypeDebt:
		if amount > 0 {
			return nil, apperror.NewValidationError("Fee and debt amounts must be negative")
		}
	}

	driver, err := s.driverRepo.GetByID(ctx, input.DriverID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, apperror.NewNotFoundError("Driver")
	}

	entry := &entity.LedgerEntry{
		DriverID:    input.DriverID,
		OrderID:     input.OrderID,
		Type:        input.Type,
		Amount:      amount,
		Description: input.Description,
		Metadata:    input.Metadata,
	}
	if err := s.ledgerRepo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// ListEntries returns a driver's ledger entries, newest first. An unknown
// driver yields an empty page rather than an error; an empty ledger and a
// missing driver are indistinguishable by design.
func (s *LedgerService) ListEntries(ctx context.Context, driverID uuid.UUID, params *repository.EntryFilterParams) (*pagination.Page[entity.LedgerEntry], error) {
	if params == nil {
		params = &repository.EntryFilterParams{}
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultParams()
	}
	params.Pagination.Validate()

	entries, total, err := s.ledgerRepo.ListEntries(ctx, driverID, params)
	if err != nil {
		return nil, err
	}

	pg := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPage(entries, pg), nil
}

// GetBalance derives a driver's current balance from the full ledger. A
// driver with no activity gets a zero-valued balance, never an error.
func (s *LedgerService) GetBalance(ctx context.Context, driverID uuid.UUID) (*DriverBalance, error) {
	entries, err := s.ledgerRepo.ListAllForDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.ledgerRepo.ListSettlementsForDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}

	return ComputeBalance(driverID, entries, settlements), nil
}

// ListSettlements returns a driver's settlement history, newest first
func (s *LedgerService) ListSettlements(ctx context.Context, driverID uuid.UUID, params *pagination.Params) (*pagination.Page[entity.Settlement], error) {
	if params == nil {
		params = pagination.DefaultParams()
	}
	params.Validate()

	settlements, total, err := s.ledgerRepo.ListSettlements(ctx, driverID, params)
	if err != nil {
		return nil, err
	}

	pg := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPage(settlements, pg), nil
}

// GetSettlement returns a settlement with the entries it covered
func (s *LedgerService) GetSettlement(ctx context.Context, id uuid.UUID) (*entity.Settlement, error) {
	settlement, err := s.ledgerRepo.GetSettlementByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, apperror.NewNotFoundError("Settlement")
	}
	return settlement, nil
}
