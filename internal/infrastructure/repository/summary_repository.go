package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domainRepo "github.com/felixotieno/haraka-api/internal/domain/repository"
)

type summaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *gorm.DB) domainRepo.SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) GetLedgerTotals(ctx context.Context, since *time.Time) (*domainRepo.LedgerTotalsResult, error) {
	var result domainRepo.LedgerTotalsResult

	entryQuery := `
		SELECT
			COALESCE(SUM(CASE WHEN type = 0 THEN amount ELSE 0 END), 0) / 100.0 AS total_earnings,
			COALESCE(SUM(CASE WHEN type = 1 THEN amount ELSE 0 END), 0) / 100.0 AS total_fees,
			COALESCE(SUM(CASE WHEN type = 3 THEN amount ELSE 0 END), 0) / 100.0 AS total_debts,
			COALESCE(SUM(CASE WHEN type IN (0, 1, 3) AND is_settled = false THEN amount ELSE 0 END), 0) / 100.0 AS total_unsettled,
			COUNT(*) AS entry_count,
			COUNT(DISTINCT driver_id) AS driver_count
		FROM ledger_entries
	`
	var err error
	if since != nil {
		err = r.db.WithContext(ctx).Raw(entryQuery+" WHERE created_at >= ?", *since).Scan(&result).Error
	} else {
		err = r.db.WithContext(ctx).Raw(entryQuery).Scan(&result).Error
	}
	if err != nil {
		return nil, err
	}

	// Settlement totals come from the settlements table, never from the
	// marker entries, so a missing marker can never skew the report
	type settlementTotals struct {
		TotalSettlements float64
		SettlementCount  int64
	}
	var st settlementTotals

	settlementQuery := `
		SELECT
			COALESCE(SUM(amount), 0) / 100.0 AS total_settlements,
			COUNT(*) AS settlement_count
		FROM settlements
	`
	if since != nil {
		err = r.db.WithContext(ctx).Raw(settlementQuery+" WHERE created_at >= ?", *since).Scan(&st).Error
	} else {
		err = r.db.WithContext(ctx).Raw(settlementQuery).Scan(&st).Error
	}
	if err != nil {
		return nil, err
	}

	result.TotalSettlements = st.TotalSettlements
	result.SettlementCount = st.SettlementCount

	return &result, nil
}

func (r *summaryRepository) GetTopDrivers(ctx context.Context, since *time.Time, limit int) ([]domainRepo.TopDriverResult, error) {
	var results []domainRepo.TopDriverResult

	query := `
		SELECT
			d.id AS driver_id,
			d.name AS driver_name,
			COALESCE(SUM(CASE WHEN e.type = 0 THEN e.amount ELSE 0 END), 0) / 100.0 AS total_earnings,
			COALESCE(SUM(CASE WHEN e.type IN (0, 1, 3) AND e.is_settled = false THEN e.amount ELSE 0 END), 0) / 100.0 AS unsettled,
			COUNT(e.id) AS entry_count
		FROM drivers d
		JOIN ledger_entries e ON e.driver_id = d.id
	`
	tail := `
		GROUP BY d.id, d.name
		ORDER BY total_earnings DESC
		LIMIT ?
	`

	var err error
	if since != nil {
		err = r.db.WithContext(ctx).Raw(query+" WHERE e.created_at >= ? "+tail, *since, limit).Scan(&results).Error
	} else {
		err = r.db.WithContext(ctx).Raw(query+tail, limit).Scan(&results).Error
	}
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *summaryRepository) GetRecentActivity(ctx context.Context, limit int) ([]domainRepo.RecentEntryResult, error) {
	var results []domainRepo.RecentEntryResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			e.id AS entry_id,
			e.driver_id AS driver_id,
			d.name AS driver_name,
			e.type AS type,
			e.amount / 100.0 AS amount,
			e.is_settled AS is_settled,
			e.created_at AS created_at
		FROM ledger_entries e
		JOIN drivers d ON d.id = e.driver_id
		ORDER BY e.created_at DESC
		LIMIT ?
	`, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}
