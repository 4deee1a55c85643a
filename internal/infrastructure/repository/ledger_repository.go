package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/felixotieno/haraka-api/internal/domain/entity"
	"github.com/felixotieno/haraka-api/internal/domain/enum"
	domainRepo "github.com/felixotieno/haraka-api/internal/domain/repository"
	"github.com/felixotieno/haraka-api/pkg/pagination"
)

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *gorm.DB) domainRepo.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) CreateEntry(ctx context.Context, entry *entity.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *ledgerRepository) GetEntryByID(ctx context.Context, id uuid.UUID) (*entity.LedgerEntry, error) {
	var entry entity.LedgerEntry
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &entry, err
}

func (r *ledgerRepository) GetEntriesByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.LedgerEntry, error) {
	var entries []entity.LedgerEntry
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&entries).Error
	return entries, err
}

func (r *ledgerRepository) ListEntries(ctx context.Context, driverID uuid.UUID, params *domainRepo.EntryFilterParams) ([]entity.LedgerEntry, int64, error) {
	var entries []entity.LedgerEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.LedgerEntry{}).
		Where("driver_id = ?", driverID)

	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}

	if params.Settled != nil {
		query = query.Where("is_settled = ?", *params.Settled)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&entries).Error

	return entries, total, err
}

func (r *ledgerRepository) ListUnsettled(ctx context.Context, driverID uuid.UUID) ([]entity.LedgerEntry, error) {
	var entries []entity.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("driver_id = ? AND is_settled = false", driverID).
		Where("type IN ?", []enum.EntryType{enum.EntryTypeEarning, enum.EntryTypeFee, enum.EntryTypeDebt}).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *ledgerRepository) ListAllForDriver(ctx context.Context, driverID uuid.UUID) ([]entity.LedgerEntry, error) {
	var entries []entity.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

// CreateSettlement claims each entry with a conditional update so that two
// concurrent settlements over overlapping entries cannot both succeed: the
// claim flips is_settled from false to true and a zero-rows-affected result
// means someone else got there first (or the entry does not belong to this
// driver). Any conflict rolls back the whole transaction.
func (r *ledgerRepository) CreateSettlement(ctx context.Context, settlement *entity.Settlement, entryIDs []uuid.UUID) ([]uuid.UUID, error) {
	var conflictIDs []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(settlement).Error; err != nil {
			return err
		}

		settledAt := time.Now()
		for _, id := range entryIDs {
			result := tx.Model(&entity.LedgerEntry{}).
				Where("id = ? AND driver_id = ? AND is_settled = false", id, settlement.DriverID).
				Updates(map[string]interface{}{
					"is_settled":    true,
					"settled_at":    settledAt,
					"settlement_id": settlement.ID,
				})

			if result.Error != nil {
				return result.Error
			}

			if result.RowsAffected == 0 {
				conflictIDs = append(conflictIDs, id)
			}
		}

		// If any entry could not be claimed, roll back the entire settlement
		if len(conflictIDs) > 0 {
			return gorm.ErrInvalidTransaction
		}

		// Historical payout marker in the driver's entry feed. It is born
		// settled and carries the settlement id in metadata rather than the
		// settlement_id column, so it never shows up among the covered
		// entries.
		marker := &entity.LedgerEntry{
			DriverID:    settlement.DriverID,
			Type:        enum.EntryTypeSettlement,
			Amount:      -settlement.Amount,
			Description: "Settlement payout",
			IsSettled:   true,
			SettledAt:   &settledAt,
			Metadata:    entity.JSONMap{"settlement_id": settlement.ID.String()},
		}
		return tx.Create(marker).Error
	})

	// A rollback forced by the conflict check is reported through the ids,
	// not as a storage error
	if err == gorm.ErrInvalidTransaction && len(conflictIDs) > 0 {
		return conflictIDs, nil
	}

	return conflictIDs, err
}

func (r *ledgerRepository) GetSettlementByID(ctx context.Context, id uuid.UUID) (*entity.Settlement, error) {
	var settlement entity.Settlement
	err := r.db.WithContext(ctx).
		Preload("Entries").
		First(&settlement, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &settlement, err
}

func (r *ledgerRepository) ListSettlements(ctx context.Context, driverID uuid.UUID, params *pagination.Params) ([]entity.Settlement, int64, error) {
	var settlements []entity.Settlement
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Settlement{}).
		Where("driver_id = ?", driverID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Entries").
		Order("created_at DESC").
		Find(&settlements).Error

	return settlements, total, err
}

func (r *ledgerRepository) ListSettlementsForDriver(ctx context.Context, driverID uuid.UUID) ([]entity.Settlement, error) {
	var settlements []entity.Settlement
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("created_at ASC").
		Find(&settlements).Error
	return settlements, err
}
