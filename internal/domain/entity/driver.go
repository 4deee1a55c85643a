package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/felixotieno/haraka-api/internal/domain/enum"
)

// Driver represents a delivery driver. Financial state is deliberately absent
// from this model: balances and debts are always derived from the ledger, so
// they can never drift from it.
type Driver struct {
	ID         uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Name       string            `gorm:"size:255;not null" json:"name"`
	Phone      string            `gorm:"size:50;not null" json:"phone"`
	VehicleType string           `gorm:"size:50" json:"vehicle_type"`
	VehicleReg *string           `gorm:"size:50" json:"vehicle_reg,omitempty"`
	Photo      *string           `gorm:"size:255" json:"photo,omitempty"`
	Status     enum.DriverStatus `gorm:"default:0" json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	DeletedAt  gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	User        User          `gorm:"foreignKey:UserID" json:"-"`
	Orders      []Order       `gorm:"foreignKey:DriverID" json:"-"`
	Entries     []LedgerEntry `gorm:"foreignKey:DriverID" json:"-"`
	Settlements []Settlement  `gorm:"foreignKey:DriverID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new driver
func (d *Driver) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Driver model
func (Driver) TableName() string {
	return "drivers"
}
