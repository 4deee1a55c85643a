package service

import (
	"testing"

	"github.com/google/uuid"

	"github.com/felixotieno/haraka-api/internal/domain/entity"
	"github.com/felixotieno/haraka-api/internal/domain/enum"
)

func entryOf(driverID uuid.UUID, t enum.EntryType, cents int64, settled bool) entity.LedgerEntry {
	return entity.LedgerEntry{
		ID:        uuid.New(),
		DriverID:  driverID,
		Type:      t,
		Amount:    cents,
		IsSettled: settled,
	}
}

func TestComputeBalanceEmptyLedger(t *testing.T) {
	driverID := uuid.New()
	balance := ComputeBalance(driverID, nil, nil)

	if balance.DriverID != driverID {
		t.Errorf("driver id = %s, want %s", balance.DriverID, driverID)
	}
	if balance.CurrentBalance != 0 || balance.PendingSettlement != 0 {
		t.Errorf("empty ledger should yield zero balance, got current=%v pending=%v",
			balance.CurrentBalance, balance.PendingSettlement)
	}
	if balance.Breakdown.NetUnsettled != 0 {
		t.Errorf("net unsettled = %v, want 0", balance.Breakdown.NetUnsettled)
	}
}

func TestComputeBalanceDerivations(t *testing.T) {
	driverID := uuid.New()

	entries := []entity.LedgerEntry{
		entryOf(driverID, enum.EntryTypeEarning, 5000, true),  // settled earning, 50.00
		entryOf(driverID, enum.EntryTypeEarning, 3000, false), // unsettled earning, 30.00
		entryOf(driverID, enum.EntryTypeFee, -1000, true),     // settled fee, -10.00
		entryOf(driverID, enum.EntryTypeFee, -600, false),     // unsettled fee, -6.00
		entryOf(driverID, enum.EntryTypeDebt, -400, false),    // unsettled debt, -4.00
		// Historical payout marker, excluded from all sums
		entryOf(driverID, enum.EntryTypeSettlement, -4000, true),
	}
	settlements := []entity.Settlement{
		{ID: uuid.New(), DriverID: driverID, Amount: 4000},
	}

	balance := ComputeBalance(driverID, entries, settlements)

	if got, want := balance.TotalEarnings, 80.0; got != want {
		t.Errorf("total earnings = %v, want %v", got, want)
	}
	if got, want := balance.TotalFees, -16.0; got != want {
		t.Errorf("total fees = %v, want %v", got, want)
	}
	if got, want := balance.TotalDebts, -4.0; got != want {
		t.Errorf("total debts = %v, want %v", got, want)
	}
	if got, want := balance.TotalSettlements, 40.0; got != want {
		t.Errorf("total settlements = %v, want %v", got, want)
	}
	// 80 - 16 - 4 - 40
	if got, want := balance.CurrentBalance, 20.0; got != want {
		t.Errorf("current balance = %v, want %v", got, want)
	}
	// 30 - 6 - 4
	if got, want := balance.PendingSettlement, 20.0; got != want {
		t.Errorf("pending settlement = %v, want %v", got, want)
	}
	if got, want := balance.Breakdown.UnsettledEarnings, 30.0; got != want {
		t.Errorf("unsettled earnings = %v, want %v", got, want)
	}
	if got, want := balance.Breakdown.UnsettledFees, -6.0; got != want {
		t.Errorf("unsettled fees = %v, want %v", got, want)
	}
	if got, want := balance.Breakdown.UnsettledDebts, -4.0; got != want {
		t.Errorf("unsettled debts = %v, want %v", got, want)
	}
	if got, want := balance.Breakdown.NetUnsettled, 20.0; got != want {
		t.Errorf("net unsettled = %v, want %v", got, want)
	}
}

func TestComputeBalanceIsPure(t *testing.T) {
	driverID := uuid.New()
	entries := []entity.LedgerEntry{
		entryOf(driverID, enum.EntryTypeEarning, 1234, false),
		entryOf(driverID, enum.EntryTypeFee, -234, false),
	}

	first := ComputeBalance(driverID, entries, nil)
	second := ComputeBalance(driverID, entries, nil)

	if *first != *second {
		t.Errorf("identical input produced different balances: %+v vs %+v", first, second)
	}
	for i, e := range entries {
		if e.Amount != []int64{1234, -234}[i] {
			t.Errorf("input entry %d mutated: %+v", i, e)
		}
	}
}

func TestComputeBalanceNegativePending(t *testing.T) {
	driverID := uuid.New()
	entries := []entity.LedgerEntry{
		entryOf(driverID, enum.EntryTypeDebt, -2500, false),
	}

	balance := ComputeBalance(driverID, entries, nil)
	if got, want := balance.PendingSettlement, -25.0; got != want {
		t.Errorf("pending settlement = %v, want %v", got, want)
	}
	if got, want := balance.CurrentBalance, -25.0; got != want {
		t.Errorf("current balance = %v, want %v", got, want)
	}
}
