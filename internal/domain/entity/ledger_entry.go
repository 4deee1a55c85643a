package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/felixotieno/haraka-api/internal/domain/enum"
)

// JSONMap stores free-form annotations as a jsonb column
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return errors.New("unsupported type for JSONMap")
}

// LedgerEntry is a single signed record in a driver's ledger. The ledger is
// append-only: amount and driver never change after creation, and corrections
// are recorded as new entries. The only permitted mutation is the one-time
// unsettled to settled transition performed by the settlement engine.
type LedgerEntry struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	DriverID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"driver_id"`
	OrderID      *uuid.UUID     `gorm:"type:uuid;index" json:"order_id,omitempty"`
	Type         enum.EntryType `gorm:"not null;index" json:"type"`
	Amount       int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Description  string         `gorm:"type:text;not null" json:"description"`
	IsSettled    bool           `gorm:"not null;default:false;index" json:"is_settled"`
	SettledAt    *time.Time     `json:"settled_at,omitempty"`
	SettlementID *uuid.UUID     `gorm:"type:uuid;index" json:"settlement_id,omitempty"`
	Metadata     JSONMap        `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`

	// Relationships
	Driver Driver `gorm:"foreignKey:DriverID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (e LedgerEntry) MarshalJSON() ([]byte, error) {
	type Alias LedgerEntry
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(e),
		Amount: float64(e.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new ledger entry
func (e *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LedgerEntry model
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
