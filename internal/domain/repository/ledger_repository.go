package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixotieno/haraka-api/internal/domain/entity"
	"github.com/felixotieno/haraka-api/internal/domain/enum"
	"github.com/felixotieno/haraka-api/pkg/pagination"
)

// EntryFilterParams contains filtering parameters for ledger entry queries.
// Filters apply before pagination.
type EntryFilterParams struct {
	Pagination *pagination.Params
	Type       *enum.EntryType
	Settled    *bool
	StartDate  *time.Time
	EndDate    *time.Time
}

// LedgerRepository defines the interface for the append-only ledger store.
// Entries are never updated except for the one-time settled transition, which
// only CreateSettlement may perform.
type LedgerRepository interface {
	// CreateEntry appends a new entry to the ledger
	CreateEntry(ctx context.Context, entry *entity.LedgerEntry) error

	// GetEntryByID returns a single entry, or nil if it does not exist
	GetEntryByID(ctx context.Context, id uuid.UUID) (*entity.LedgerEntry, error)

	// GetEntriesByIDs returns the entries matching the given ids
	GetEntriesByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.LedgerEntry, error)

	// ListEntries returns a driver's entries ordered by created_at descending
	ListEntries(ctx context.Context, driverID uuid.UUID, params *EntryFilterParams) ([]entity.LedgerEntry, int64, error)

	// ListUnsettled returns all of a driver's unsettled earning, fee and debt
	// entries (settlement markers are never unsettled)
	ListUnsettled(ctx context.Context, driverID uuid.UUID) ([]entity.LedgerEntry, error)

	// ListAllForDriver returns every entry for a driver, for balance derivation
	ListAllForDriver(ctx context.Context, driverID uuid.UUID) ([]entity.LedgerEntry, error)

	// CreateSettlement atomically records the settlement, claims each entry by
	// flipping is_settled from false to true, and appends the settlement-type
	// marker entry. Either every step commits or none do. Entries that could
	// not be claimed (already settled, missing, or owned by another driver)
	// are returned as conflict ids with a nil error; the transaction is rolled
	// back whenever any conflict occurs.
	CreateSettlement(ctx context.Context, settlement *entity.Settlement, entryIDs []uuid.UUID) ([]uuid.UUID, error)

	// GetSettlementByID returns a settlement with its covered entries, or nil
	GetSettlementByID(ctx context.Context, id uuid.UUID) (*entity.Settlement, error)

	// ListSettlements returns a driver's settlements, newest first
	ListSettlements(ctx context.Context, driverID uuid.UUID, params *pagination.Params) ([]entity.Settlement, int64, error)

	// ListSettlementsForDriver returns every settlement for a driver, for
	// balance derivation
	ListSettlementsForDriver(ctx context.Context, driverID uuid.UUID) ([]entity.Settlement, error)
}
