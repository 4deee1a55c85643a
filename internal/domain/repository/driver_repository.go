package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixotieno/haraka-api/internal/domain/entity"
	"github.com/felixotieno/haraka-api/internal/domain/enum"
	"github.com/felixotieno/haraka-api/pkg/pagination"
)

// DriverRepository defines the interface for driver data operations
type DriverRepository interface {
	Create(ctx context.Context, driver *entity.Driver) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Driver, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Driver, error)
	Update(ctx context.Context, driver *entity.Driver) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DriverStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.Params, search string, status *enum.DriverStatus) ([]entity.Driver, int64, error)
}
