package request

import "github.com/google/uuid"

// CreateEntryRequest represents a manual ledger entry payload. Amount is in
// decimal currency units and must follow the sign convention of its type.
type CreateEntryRequest struct {
	DriverID    uuid.UUID              `json:"driver_id" binding:"required"`
	OrderID     *uuid.UUID             `json:"order_id"`
	Type        string                 `json:"type" binding:"required"`
	Amount      float64                `json:"amount" binding:"required"`
	Description string                 `json:"description" binding:"required"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// CreateSettlementRequest represents a payout request
type CreateSettlementRequest struct {
	DriverID         uuid.UUID   `json:"driver_id" binding:"required"`
	EntryIDs         []uuid.UUID `json:"entry_ids" binding:"required,min=1"`
	Amount           float64     `json:"amount" binding:"required,gt=0"`
	PaymentMethod    *string     `json:"payment_method"`
	PaymentReference *string     `json:"payment_reference"`
	Notes            *string     `json:"notes"`
}

// AutoSettleRequest represents an auto-settlement trigger. MinAmount is in
// decimal units; omitted or non-positive falls back to the configured default.
type AutoSettleRequest struct {
	MinAmount float64 `json:"min_amount"`
}
