package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LedgerTotalsResult represents platform-wide ledger totals, in decimal units
type LedgerTotalsResult struct {
	TotalEarnings    float64
	TotalFees        float64
	TotalDebts       float64
	TotalSettlements float64
	TotalUnsettled   float64
	EntryCount       int64
	SettlementCount  int64
	DriverCount      int64
}

// TopDriverResult represents a driver's earning performance
type TopDriverResult struct {
	DriverID      uuid.UUID
	DriverName    string
	TotalEarnings float64
	Unsettled     float64
	EntryCount    int64
}

// RecentEntryResult represents a recent ledger entry with its driver's name
type RecentEntryResult struct {
	EntryID    uuid.UUID
	DriverID   uuid.UUID
	DriverName string
	Type       int
	Amount     float64
	IsSettled  bool
	CreatedAt  time.Time
}

// SummaryRepository defines the interface for cross-driver ledger aggregation
// queries consumed by the admin dashboard. Read-only.
type SummaryRepository interface {
	// GetLedgerTotals returns platform-wide totals for entries created since
	// the given time; a nil since covers all time. Settlement totals always
	// come from the settlements table, not from marker entries.
	GetLedgerTotals(ctx context.Context, since *time.Time) (*LedgerTotalsResult, error)

	// GetTopDrivers returns the highest-earning drivers since the given time
	GetTopDrivers(ctx context.Context, since *time.Time, limit int) ([]TopDriverResult, error)

	// GetRecentActivity returns the most recent ledger entries across drivers
	GetRecentActivity(ctx context.Context, limit int) ([]RecentEntryResult, error)
}
