package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/felixotieno/haraka-api/internal/domain/entity"
	"github.com/felixotieno/haraka-api/internal/domain/enum"
	domainRepo "github.com/felixotieno/haraka-api/internal/domain/repository"
	"github.com/felixotieno/haraka-api/pkg/pagination"
)

type driverRepository struct {
	db *gorm.DB
}

// NewDriverRepository creates a new driver repository
func NewDriverRepository(db *gorm.DB) domainRepo.DriverRepository {
	return &driverRepository{db: db}
}

func (r *driverRepository) Create(ctx context.Context, driver *entity.Driver) error {
	return r.db.WithContext(ctx).Create(driver).Error
}

func (r *driverRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Driver, error) {
	var driver entity.Driver
	err := r.db.WithContext(ctx).First(&driver, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &driver, err
}

func (r *driverRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Driver, error) {
	var driver entity.Driver
	err := r.db.WithContext(ctx).First(&driver, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &driver, err
}

func (r *driverRepository) Update(ctx context.Context, driver *entity.Driver) error {
	return r.db.WithContext(ctx).Save(driver).Error
}

func (r *driverRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DriverStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Driver{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *driverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Driver{}, "id = ?", id).Error
}

func (r *driverRepository) List(ctx context.Context, params *pagination.Params, search string, status *enum.DriverStatus) ([]entity.Driver, int64, error) {
	var drivers []entity.Driver
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Driver{})

	if search != "" {
		query = query.Where("name ILIKE ? OR phone ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&drivers).Error

	return drivers, total, err
}
