package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Settlement is a payout event that marks a batch of ledger entries as settled
// and records the amount paid. Settlements are never mutated or deleted; a
// correction takes the form of new ledger entries plus a new settlement.
type Settlement struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	DriverID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"driver_id"`
	Amount           int64      `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	PaymentMethod    *string    `gorm:"size:50" json:"payment_method,omitempty"`
	PaymentReference *string    `gorm:"size:255" json:"payment_reference,omitempty"`
	Notes            *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`

	// Relationships
	Driver  Driver        `gorm:"foreignKey:DriverID" json:"-"`
	Entries []LedgerEntry `gorm:"foreignKey:SettlementID" json:"entries,omitempty"`
}

// MarshalJSON converts cents to decimal and exposes the covered entry ids as
// settled_entries
func (s Settlement) MarshalJSON() ([]byte, error) {
	ids := make([]uuid.UUID, len(s.Entries))
	for i, e := range s.Entries {
		ids[i] = e.ID
	}

	type Alias Settlement
	return json.Marshal(&struct {
		Alias
		Amount         float64     `json:"amount"`
		SettledEntries []uuid.UUID `json:"settled_entries"`
	}{
		Alias:          Alias(s),
		Amount:         float64(s.Amount) / 100,
		SettledEntries: ids,
	})
}

// BeforeCreate generates a UUID before creating a new settlement
func (s *Settlement) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Settlement model
func (Settlement) TableName() string {
	return "settlements"
}
