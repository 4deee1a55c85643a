package service

import (
	"context"
	"fmt"
	"math"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/felixotieno/haraka-api/internal/domain/entity"
	"github.com/felixotieno/haraka-api/internal/domain/repository"
	"github.com/felixotieno/haraka-api/pkg/apperror"
	"github.com/felixotieno/haraka-api/pkg/notify"
	"github.com/felixotieno/haraka-api/pkg/utils"
)

// SettlementService executes driver payouts against the ledger. Every payout
// is reconciled exactly: the declared amount must equal the sum of the entries
// it covers, to the cent, or the whole operation is rejected.
type SettlementService struct {
	ledgerRepo repository.LedgerRepository
	driverRepo repository.DriverRepository
	notifier   notify.Notifier
	log        *logrus.Logger
	minPayout  int64
}

// NewSettlementService creates a new settlement service. minPayout is the
// default auto-settlement threshold in cents.
func NewSettlementService(
	ledgerRepo repository.LedgerRepository,
	driverRepo repository.DriverRepository,
	notifier notify.Notifier,
	log *logrus.Logger,
	minPayout int64,
) *SettlementService {
	return &SettlementService{
		ledgerRepo: ledgerRepo,
		driverRepo: driverRepo,
		notifier:   notifier,
		log:        log,
		minPayout:  minPayout,
	}
}

// SettleInput represents a payout request. Amount is in decimal currency
// units; EntryIDs are the ledger entries the payout covers.
type SettleInput struct {
	DriverID         uuid.UUID
	EntryIDs         []uuid.UUID
	Amount           float64
	PaymentMethod    *string
	PaymentReference *string
	Notes            *string
}

// Settle pays out a batch of ledger entries. The settlement record, the
// settled flags and the marker entry commit in one transaction; any conflict
// rolls back everything.
func (s *SettlementService) Settle(ctx context.Context, input *SettleInput) (*entity.Settlement, error) {
	if len(input.EntryIDs) == 0 {
		return nil, apperror.NewValidationError("At least one entry id is required")
	}
	if math.IsNaN(input.Amount) || math.IsInf(input.Amount, 0) {
		return nil, apperror.NewValidationError("Amount must be a finite number")
	}
	amount := utils.ToCents(input.Amount)
	if amount <= 0 {
		return nil, apperror.NewValidationError("Settlement amount must be positive")
	}

	driver, err := s.driverRepo.GetByID(ctx, input.DriverID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, apperror.NewNotFoundError("Driver")
	}

	entries, err := s.ledgerRepo.GetEntriesByIDs(ctx, input.EntryIDs)
	if err != nil {
		return nil, err
	}
	if missing := missingIDs(input.EntryIDs, entries); len(missing) > 0 {
		return nil, &apperror.AppError{
			Code:    http.StatusNotFound,
			Message: "One or more ledger entries not found",
			Details: map[string]interface{}{"missing_entry_ids": missing},
		}
	}

	var wrongDriver, alreadySettled []uuid.UUID
	var sum int64
	for _, e := range entries {
		if e.DriverID != input.DriverID {
			wrongDriver = append(wrongDriver, e.ID)
			continue
		}
		if e.IsSettled {
			alreadySettled = append(alreadySettled, e.ID)
			continue
		}
		if e.Type.Payable() {
			sum += e.Amount
		}
	}
	if len(wrongDriver) > 0 {
		return nil, apperror.NewConflictError("One or more entries belong to another driver",
			map[string]interface{}{"entry_ids": wrongDriver})
	}
	if len(alreadySettled) > 0 {
		return nil, apperror.NewConflictError("One or more entries are already settled",
			map[string]interface{}{"entry_ids": alreadySettled})
	}

	// Exact reconciliation in cents: no tolerance, no rounding slack.
	if sum != amount {
		return nil, apperror.NewReconciliationError("Settlement amount does not match the sum of the covered entries",
			map[string]interface{}{
				"declared_amount": utils.FromCents(amount),
				"entries_total":   utils.FromCents(sum),
			})
	}

	settlement := &entity.Settlement{
		DriverID:         input.DriverID,
		Amount:           amount,
		PaymentMethod:    input.PaymentMethod,
		PaymentReference: input.PaymentReference,
		Notes:            input.Notes,
	}
	conflicts, err := s.ledgerRepo.CreateSettlement(ctx, settlement, input.EntryIDs)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		// Lost a race with a concurrent settlement; the transaction was
		// rolled back and nothing was written.
		return nil, apperror.NewConflictError("One or more entries were settled concurrently",
			map[string]interface{}{"entry_ids": conflicts})
	}

	s.log.WithFields(logrus.Fields{
		"settlement_id": settlement.ID,
		"driver_id":     input.DriverID,
		"amount":        utils.FromCents(amount),
		"entry_count":   len(input.EntryIDs),
	}).Info("settlement completed")

	notify.Send(s.notifier, s.log, driver.UserID, "Payout received",
		fmt.Sprintf("You have been paid %.2f covering %d ledger entries", utils.FromCents(amount), len(input.EntryIDs)))

	return s.ledgerRepo.GetSettlementByID(ctx, settlement.ID)
}

// AutoSettleResult reports the outcome of an auto-settlement attempt
type AutoSettleResult struct {
	Settled       bool               `json:"settled"`
	PendingAmount float64            `json:"pending_amount"`
	MinAmount     float64            `json:"min_amount"`
	Settlement    *entity.Settlement `json:"settlement,omitempty"`
}

// AutoSettle pays out everything a driver is owed, provided the unsettled net
// meets the threshold. minAmount is in decimal units; zero or negative falls
// back to the configured default. Below-threshold balances are a no-op, not
// an error.
func (s *SettlementService) AutoSettle(ctx context.Context, driverID uuid.UUID, minAmount float64) (*AutoSettleResult, error) {
	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, apperror.NewNotFoundError("Driver")
	}

	minCents := utils.ToCents(minAmount)
	if minCents <= 0 {
		minCents = s.minPayout
	}

	unsettled, err := s.ledgerRepo.ListUnsettled(ctx, driverID)
	if err != nil {
		return nil, err
	}

	var pending int64
	ids := make([]uuid.UUID, 0, len(unsettled))
	for _, e := range unsettled {
		pending += e.Amount
		ids = append(ids, e.ID)
	}

	result := &AutoSettleResult{
		PendingAmount: utils.FromCents(pending),
		MinAmount:     utils.FromCents(minCents),
	}
	if pending < minCents {
		s.log.WithFields(logrus.Fields{
			"driver_id": driverID,
			"pending":   result.PendingAmount,
			"min":       result.MinAmount,
		}).Debug("auto-settlement below threshold, skipping")
		return result, nil
	}

	settlement, err := s.Settle(ctx, &SettleInput{
		DriverID: driverID,
		EntryIDs: ids,
		Amount:   utils.FromCents(pending),
	})
	if err != nil {
		return nil, err
	}

	result.Settled = true
	result.Settlement = settlement
	return result, nil
}

func missingIDs(requested []uuid.UUID, found []entity.LedgerEntry) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(found))
	for _, e := range found {
		seen[e.ID] = true
	}
	var missing []uuid.UUID
	for _, id := range requested {
		if !seen[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
