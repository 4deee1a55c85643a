package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixotieno/haraka-api/internal/domain/entity"
	"github.com/felixotieno/haraka-api/internal/domain/enum"
	"github.com/felixotieno/haraka-api/pkg/pagination"
)

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination   *pagination.Params
	Status       *enum.OrderStatus
	CustomerID   *uuid.UUID
	RestaurantID *uuid.UUID
	DriverID     *uuid.UUID
	StartDate    *time.Time
	EndDate      *time.Time
}

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	// UpdateWithEntries saves the order and appends the given ledger entries
	// in a single transaction. Either all of them commit or none do.
	UpdateWithEntries(ctx context.Context, order *entity.Order, entries []*entity.LedgerEntry) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
}

// OrderItemRepository defines the interface for order item data operations
type OrderItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.OrderItem) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error)
}
