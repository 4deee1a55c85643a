package service

import (
	"github.com/google/uuid"

	"github.com/felixotieno/haraka-api/internal/domain/entity"
	"github.com/felixotieno/haraka-api/internal/domain/enum"
)

// BalanceBreakdown itemizes the unsettled portion of a driver's ledger
type BalanceBreakdown struct {
	UnsettledEarnings float64 `json:"unsettled_earnings"`
	UnsettledFees     float64 `json:"unsettled_fees"`
	UnsettledDebts    float64 `json:"unsettled_debts"`
	NetUnsettled      float64 `json:"net_unsettled"`
}

// DriverBalance is a driver's financial position, derived on every read from
// the ledger store and never persisted, so it cannot drift from the entries
// it summarizes.
type DriverBalance struct {
	DriverID          uuid.UUID        `json:"driver_id"`
	TotalEarnings     float64          `json:"total_earnings"`
	TotalFees         float64          `json:"total_fees"`
	TotalDebts        float64          `json:"total_debts"`
	TotalSettlements  float64          `json:"total_settlements"`
	CurrentBalance    float64          `json:"current_balance"`
	PendingSettlement float64          `json:"pending_settlement"`
	Breakdown         BalanceBreakdown `json:"breakdown"`
}

// ComputeBalance derives a driver's balance from its entries and settlements.
// It is a pure function: no side effects, and identical input always yields
// identical output. All arithmetic happens in integer cents; conversion to
// decimal happens only at the edges.
//
// currentBalance = totalEarnings + totalFees + totalDebts - totalSettlements,
// where fees and debts are stored as negative amounts. Settlement-type marker
// entries are historical records of past payouts and are excluded from every
// sum; the payout total comes from the settlements themselves.
func ComputeBalance(driverID uuid.UUID, entries []entity.LedgerEntry, settlements []entity.Settlement) *DriverBalance {
	var earnings, fees, debts int64
	var unsettledEarnings, unsettledFees, unsettledDebts int64

	for _, e := range entries {
		switch e.Type {
		case enum.EntryTypeEarning:
			earnings += e.Amount
			if !e.IsSettled {
				unsettledEarnings += e.Amount
			}
		case enum.EntryTypeFee:
			fees += e.Amount
			if !e.IsSettled {
				unsettledFees += e.Amount
			}
		case enum.EntryTypeDebt:
			debts += e.Amount
			if !e.IsSettled {
				unsettledDebts += e.Amount
			}
		}
	}

	var settled int64
	for _, s := range settlements {
		settled += s.Amount
	}

	netUnsettled := unsettledEarnings + unsettledFees + unsettledDebts
	current := earnings + fees + debts - settled

	return &DriverBalance{
		DriverID:          driverID,
		TotalEarnings:     float64(earnings) / 100,
		TotalFees:         float64(fees) / 100,
		TotalDebts:        float64(debts) / 100,
		TotalSettlements:  float64(settled) / 100,
		CurrentBalance:    float64(current) / 100,
		PendingSettlement: float64(netUnsettled) / 100,
		Breakdown: BalanceBreakdown{
			UnsettledEarnings: float64(unsettledEarnings) / 100,
			UnsettledFees:     float64(unsettledFees) / 100,
			UnsettledDebts:    float64(unsettledDebts) / 100,
			NetUnsettled:      float64(netUnsettled) / 100,
		},
	}
}
