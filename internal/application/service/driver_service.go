package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixotieno/haraka-api/internal/domain/entity"
	"github.com/felixotieno/haraka-api/internal/domain/enum"
	"github.com/felixotieno/haraka-api/internal/domain/repository"
	"github.com/felixotieno/haraka-api/pkg/apperror"
	"github.com/felixotieno/haraka-api/pkg/pagination"
)

// DriverService handles driver profile operations
type DriverService struct {
	driverRepo repository.DriverRepository
	userRepo   repository.UserRepository
}

// NewDriverService creates a new driver service
func NewDriverService(driverRepo repository.DriverRepository, userRepo repository.UserRepository) *DriverService {
	return &DriverService{
		driverRepo: driverRepo,
		userRepo:   userRepo,
	}
}

// CreateDriverInput represents the create driver input
type CreateDriverInput struct {
	UserID      uuid.UUID
	Name        string
	Phone       string
	VehicleType string
	VehicleReg  *string
}

// CreateDriver registers a delivery driver against an existing user account
func (s *DriverService) CreateDriver(ctx context.Context, input *CreateDriverInput) (*entity.Driver, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	if user.Role != entity.RoleDriver {
		return nil, apperror.NewValidationError("User account does not have the driver role")
	}

	existing, err := s.driverRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("User already has a driver profile", nil)
	}

	driver := &entity.Driver{
		UserID:      input.UserID,
		Name:        input.Name,
		Phone:       input.Phone,
		VehicleType: input.VehicleType,
		VehicleReg:  input.VehicleReg,
		Status:      enum.DriverStatusOffline,
	}
	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}

	return driver, nil
}

// GetDriver retrieves a driver by ID
func (s *DriverService) GetDriver(ctx context.Context, id uuid.UUID) (*entity.Driver, error) {
	driver, err := s.driverRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, apperror.NewNotFoundError("Driver")
	}
	return driver, nil
}

// GetDriverByUserID retrieves the driver profile linked to a user account,
// or nil when the user has none
func (s *DriverService) GetDriverByUserID(ctx context.Context, userID uuid.UUID) (*entity.Driver, error) {
	return s.driverRepo.GetByUserID(ctx, userID)
}

// UpdateDriverInput represents the update driver input
type UpdateDriverInput struct {
	Name        *string
	Phone       *string
	VehicleType *string
	VehicleReg  *string
	Photo       *string
}

// UpdateDriver updates a driver's profile fields
func (s *DriverService) UpdateDriver(ctx context.Context, id uuid.UUID, input *UpdateDriverInput) (*entity.Driver, error) {
	driver, err := s.GetDriver(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		driver.Name = *input.Name
	}
	if input.Phone != nil {
		driver.Phone = *input.Phone
	}
	if input.VehicleType != nil {
		driver.VehicleType = *input.VehicleType
	}
	if input.VehicleReg != nil {
		driver.VehicleReg = input.VehicleReg
	}
	if input.Photo != nil {
		driver.Photo = input.Photo
	}

	if err := s.driverRepo.Update(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// UpdateStatus sets a driver's availability
func (s *DriverService) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DriverStatus) (*entity.Driver, error) {
	driver, err := s.GetDriver(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.driverRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	driver.Status = status
	return driver, nil
}

// DeleteDriver soft-deletes a driver profile. The driver's ledger rows are
// retained: financial history outlives the profile.
func (s *DriverService) DeleteDriver(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetDriver(ctx, id); err != nil {
		return err
	}
	return s.driverRepo.Delete(ctx, id)
}

// ListDrivers returns drivers with optional search and status filtering
func (s *DriverService) ListDrivers(ctx context.Context, params *pagination.Params, search string, status *enum.DriverStatus) (*pagination.Page[entity.Driver], error) {
	if params == nil {
		params = pagination.DefaultParams()
	}
	params.Validate()

	drivers, total, err := s.driverRepo.List(ctx, params, search, status)
	if err != nil {
		return nil, err
	}

	pg := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPage(drivers, pg), nil
}
