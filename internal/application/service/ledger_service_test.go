package service

import (
	"context"
	"math"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/felixotieno/haraka-api/internal/domain/entity"
	"github.com/felixotieno/haraka-api/internal/domain/enum"
	"github.com/felixotieno/haraka-api/internal/domain/repository"
	"github.com/felixotieno/haraka-api/pkg/apperror"
	"github.com/felixotieno/haraka-api/pkg/pagination"
)

func newLedgerFixture(t *testing.T) (*LedgerService, *fakeLedgerRepo, *entity.Driver) {
	t.Helper()
	driver := &entity.Driver{ID: uuid.New(), UserID: uuid.New(), Name: "Otieno"}
	ledgerRepo := newFakeLedgerRepo()
	return NewLedgerService(ledgerRepo, newFakeDriverRepo(driver)), ledgerRepo, driver
}

func TestCreateEntrySignConvention(t *testing.T) {
	svc, _, driver := newLedgerFixture(t)

	tests := []struct {
		name      string
		entryType enum.EntryType
		amount    float64
		wantErr   bool
	}{
		{"positive earning", enum.EntryTypeEarning, 50.00, false},
		{"negative earning", enum.EntryTypeEarning, -50.00, true},
		{"negative fee", enum.EntryTypeFee, -10.00, false},
		{"positive fee", enum.EntryTypeFee, 10.00, true},
		{"negative debt", enum.EntryTypeDebt, -25.00, false},
		{"positive debt", enum.EntryTypeDebt, 25.00, true},
		{"zero amount", enum.EntryTypeEarning, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateEntry(context.Background(), &CreateEntryInput{
				DriverID:    driver.ID,
				Type:        tt.entryType,
				Amount:      tt.amount,
				Description: "test entry",
			})
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCreateEntryRejectsSettlementType(t *testing.T) {
	svc, _, driver := newLedgerFixture(t)

	_, err := svc.CreateEntry(context.Background(), &CreateEntryInput{
		DriverID:    driver.ID,
		Type:        enum.EntryTypeSettlement,
		Amount:      10.00,
		Description: "sneaky marker",
	})
	if err == nil {
		t.Fatal("settlement-type entries must not be creatable through the API")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", appErr.Code)
	}
}

func TestCreateEntryRejectsNonFiniteAmounts(t *testing.T) {
	svc, _, driver := newLedgerFixture(t)

	for _, amount := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := svc.CreateEntry(context.Background(), &CreateEntryInput{
			DriverID:    driver.ID,
			Type:        enum.EntryTypeEarning,
			Amount:      amount,
			Description: "bad amount",
		})
		if err == nil {
			t.Errorf("amount %v accepted", amount)
		}
	}
}

func TestCreateEntryUnknownDriver(t *testing.T) {
	svc, _, _ := newLedgerFixture(t)

	_, err := svc.CreateEntry(context.Background(), &CreateEntryInput{
		DriverID:    uuid.New(),
		Type:        enum.EntryTypeEarning,
		Amount:      10.00,
		Description: "orphan",
	})
	if err == nil {
		t.Fatal("expected not found")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", appErr.Code)
	}
}

func TestCreateEntryConvertsToCents(t *testing.T) {
	svc, ledgerRepo, driver := newLedgerFixture(t)

	entry, err := svc.CreateEntry(context.Background(), &CreateEntryInput{
		DriverID:    driver.ID,
		Type:        enum.EntryTypeEarning,
		Amount:      15.50,
		Description: "delivery",
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	stored, _ := ledgerRepo.GetEntryByID(context.Background(), entry.ID)
	if stored.Amount != 1550 {
		t.Errorf("stored amount = %d cents, want 1550", stored.Amount)
	}
}

func TestListEntriesUnknownDriverIsEmptyPage(t *testing.T) {
	svc, _, _ := newLedgerFixture(t)

	page, err := svc.ListEntries(context.Background(), uuid.New(), nil)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(page.Items) != 0 {
		t.Errorf("expected empty page, got %d items", len(page.Items))
	}
	if page.Pagination.Total != 0 {
		t.Errorf("total = %d, want 0", page.Pagination.Total)
	}
}

func TestListEntriesFilters(t *testing.T) {
	svc, ledgerRepo, driver := newLedgerFixture(t)
	seedEntry(t, ledgerRepo, driver.ID, enum.EntryTypeEarning, 1000)
	seedEntry(t, ledgerRepo, driver.ID, enum.EntryTypeEarning, 2000)
	seedEntry(t, ledgerRepo, driver.ID, enum.EntryTypeFee, -300)

	earning := enum.EntryTypeEarning
	page, err := svc.ListEntries(context.Background(), driver.ID, &repository.EntryFilterParams{
		Pagination: pagination.DefaultParams(),
		Type:       &earning,
	})
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if page.Pagination.Total != 2 {
		t.Errorf("filtered total = %d, want 2", page.Pagination.Total)
	}
	for _, e := range page.Items {
		if e.Type != enum.EntryTypeEarning {
			t.Errorf("filter leaked entry of type %s", e.Type)
		}
	}
}

func TestGetBalanceZeroForUnknownDriver(t *testing.T) {
	svc, _, _ := newLedgerFixture(t)

	balance, err := svc.GetBalance(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if balance.CurrentBalance != 0 {
		t.Errorf("current balance = %v, want 0", balance.CurrentBalance)
	}
}

func TestGetBalanceReflectsSettlement(t *testing.T) {
	ledgerSvc, ledgerRepo, driver := newLedgerFixture(t)
	settleSvc := NewSettlementService(ledgerRepo, newFakeDriverRepo(driver), discardNotifier{}, testLogger(), 2000)

	earning := seedEntry(t, ledgerRepo, driver.ID, enum.EntryTypeEarning, 6000)
	seedEntry(t, ledgerRepo, driver.ID, enum.EntryTypeEarning, 1000)

	if _, err := settleSvc.Settle(context.Background(), &SettleInput{
		DriverID: driver.ID,
		EntryIDs: []uuid.UUID{earning},
		Amount:   60.00,
	}); err != nil {
		t.Fatalf("settle: %v", err)
	}

	balance, err := ledgerSvc.GetBalance(context.Background(), driver.ID)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if got, want := balance.TotalEarnings, 70.0; got != want {
		t.Errorf("total earnings = %v, want %v", got, want)
	}
	if got, want := balance.TotalSettlements, 60.0; got != want {
		t.Errorf("total settlements = %v, want %v", got, want)
	}
	if got, want := balance.CurrentBalance, 10.0; got != want {
		t.Errorf("current balance = %v, want %v", got, want)
	}
	if got, want := balance.PendingSettlement, 10.0; got != want {
		t.Errorf("pending = %v, want %v", got, want)
	}
}

func TestGetSettlementNotFound(t *testing.T) {
	svc, _, _ := newLedgerFixture(t)

	_, err := svc.GetSettlement(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected not found")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", appErr.Code)
	}
}
