package service

import (
	"context"
	"time"

	"github.com/felixotieno/haraka-api/internal/domain/enum"
	"github.com/felixotieno/haraka-api/internal/domain/repository"
	"github.com/google/uuid"
)

const (
	topDriverLimit      = 10
	recentActivityLimit = 20
)

// ReportService aggregates ledger data across drivers for the admin dashboard
type ReportService struct {
	summaryRepo repository.SummaryRepository
}

// NewReportService creates a new report service
func NewReportService(summaryRepo repository.SummaryRepository) *ReportService {
	return &ReportService{summaryRepo: summaryRepo}
}

// LedgerTotals holds platform-wide ledger totals for a reporting period
type LedgerTotals struct {
	TotalEarnings    float64 `json:"total_earnings"`
	TotalFees        float64 `json:"total_fees"`
	TotalDebts       float64 `json:"total_debts"`
	TotalSettlements float64 `json:"total_settlements"`
	TotalUnsettled   float64 `json:"total_unsettled"`
	EntryCount       int64   `json:"entry_count"`
	SettlementCount  int64   `json:"settlement_count"`
	DriverCount      int64   `json:"driver_count"`
}

// TopDriver is one row of the earnings leaderboard
type TopDriver struct {
	DriverID      uuid.UUID `json:"driver_id"`
	DriverName    string    `json:"driver_name"`
	TotalEarnings float64   `json:"total_earnings"`
	Unsettled     float64   `json:"unsettled"`
	EntryCount    int64     `json:"entry_count"`
}

// RecentEntry is one row of the recent activity feed
type RecentEntry struct {
	EntryID    uuid.UUID `json:"entry_id"`
	DriverID   uuid.UUID `json:"driver_id"`
	DriverName string    `json:"driver_name"`
	Type       string    `json:"type"`
	Amount     float64   `json:"amount"`
	IsSettled  bool      `json:"is_settled"`
	CreatedAt  time.Time `json:"created_at"`
}

// LedgerSummary is the full admin dashboard payload
type LedgerSummary struct {
	Period         string        `json:"period"`
	Totals         LedgerTotals  `json:"totals"`
	TopDrivers     []TopDriver   `json:"top_drivers"`
	RecentActivity []RecentEntry `json:"recent_activity"`
}

// GetLedgerSummary builds the dashboard summary for the given period. Periods
// are "day", "week" and "month"; anything else means all time.
func (s *ReportService) GetLedgerSummary(ctx context.Context, period string) (*LedgerSummary, error) {
	since := periodStart(period, time.Now())
	if since == nil {
		period = "all"
	}

	totals, err := s.summaryRepo.GetLedgerTotals(ctx, since)
	if err != nil {
		return nil, err
	}
	top, err := s.summaryRepo.GetTopDrivers(ctx, since, topDriverLimit)
	if err != nil {
		return nil, err
	}
	recent, err := s.summaryRepo.GetRecentActivity(ctx, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	summary := &LedgerSummary{
		Period: period,
		Totals: LedgerTotals{
			TotalEarnings:    totals.TotalEarnings,
			TotalFees:        totals.TotalFees,
			TotalDebts:       totals.TotalDebts,
			TotalSettlements: totals.TotalSettlements,
			TotalUnsettled:   totals.TotalUnsettled,
			EntryCount:       totals.EntryCount,
			SettlementCount:  totals.SettlementCount,
			DriverCount:      totals.DriverCount,
		},
		TopDrivers:     make([]TopDriver, 0, len(top)),
		RecentActivity: make([]RecentEntry, 0, len(recent)),
	}
	for _, d := range top {
		summary.TopDrivers = append(summary.TopDrivers, TopDriver{
			DriverID:      d.DriverID,
			DriverName:    d.DriverName,
			TotalEarnings: d.TotalEarnings,
			Unsettled:     d.Unsettled,
			EntryCount:    d.EntryCount,
		})
	}
	for _, e := range recent {
		summary.RecentActivity = append(summary.RecentActivity, RecentEntry{
			EntryID:    e.EntryID,
			DriverID:   e.DriverID,
			DriverName: e.DriverName,
			Type:       enum.EntryType(e.Type).String(),
			Amount:     e.Amount,
			IsSettled:  e.IsSettled,
			CreatedAt:  e.CreatedAt,
		})
	}

	return summary, nil
}

// periodStart maps a period name to its inclusive start time; nil means no
// lower bound
func periodStart(period string, now time.Time) *time.Time {
	var since time.Time
	switch period {
	case "day", "today":
		since = now.AddDate(0, 0, -1)
	case "week":
		since = now.AddDate(0, 0, -7)
	case "month":
		since = now.AddDate(0, -1, 0)
	default:
		return nil
	}
	return &since
}
