package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/felixotieno/haraka-api/internal/domain/enum"
)

// Order represents a customer food order
type Order struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"customer_id"`
	RestaurantID uuid.UUID        `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	DriverID     *uuid.UUID       `gorm:"type:uuid;index" json:"driver_id,omitempty"`
	Status       enum.OrderStatus `gorm:"default:0" json:"status"`
	SubTotal     int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	DeliveryFee  int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Tip          int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Total        int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	DeliveryAddress string        `gorm:"type:text;not null" json:"delivery_address"`
	DeliveredAt  *time.Time       `json:"delivered_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Customer   User        `gorm:"foreignKey:CustomerID" json:"-"`
	Restaurant Restaurant  `gorm:"foreignKey:RestaurantID" json:"-"`
	Driver     *Driver     `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	Items      []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		SubTotal    float64 `json:"sub_total"`
		DeliveryFee float64 `json:"delivery_fee"`
		Tip         float64 `json:"tip"`
		Total       float64 `json:"total"`
	}{
		Alias:       Alias(o),
		SubTotal:    float64(o.SubTotal) / 100,
		DeliveryFee: float64(o.DeliveryFee) / 100,
		Tip:         float64(o.Tip) / 100,
		Total:       float64(o.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem represents a line item in an order
type OrderItem struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	MenuItemID uuid.UUID      `gorm:"type:uuid;not null;index" json:"menu_item_id"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	UnitPrice  int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Total      int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order    Order    `gorm:"foreignKey:OrderID" json:"-"`
	MenuItem MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (oi OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(oi),
		UnitPrice: float64(oi.UnitPrice) / 100,
		Total:     float64(oi.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
