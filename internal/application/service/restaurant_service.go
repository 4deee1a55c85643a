package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/felixotieno/haraka-api/internal/domain/entity"
	"github.com/felixotieno/haraka-api/internal/domain/repository"
	"github.com/felixotieno/haraka-api/pkg/apperror"
	"github.com/felixotieno/haraka-api/pkg/pagination"
	"github.com/felixotieno/haraka-api/pkg/storage"
	"github.com/felixotieno/haraka-api/pkg/utils"
)

// RestaurantService handles restaurant and menu operations
type RestaurantService struct {
	restaurantRepo repository.RestaurantRepository
	menuRepo       repository.MenuItemRepository
	store          storage.BlobStore
}

// NewRestaurantService creates a new restaurant service
func NewRestaurantService(
	restaurantRepo repository.RestaurantRepository,
	menuRepo repository.MenuItemRepository,
	store storage.BlobStore,
) *RestaurantService {
	return &RestaurantService{
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
		store:          store,
	}
}

// CreateRestaurantInput represents the create restaurant input
type CreateRestaurantInput struct {
	OwnerID     uuid.UUID
	Name        string
	Description *string
	Address     string
	Phone       *string
}

// CreateRestaurant creates a new restaurant
func (s *RestaurantService) CreateRestaurant(ctx context.Context, input *CreateRestaurantInput) (*entity.Restaurant, error) {
	restaurant := &entity.Restaurant{
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		Phone:       input.Phone,
		IsOpen:      true,
	}
	if err := s.restaurantRepo.Create(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// GetRestaurant retrieves a restaurant with its menu
func (s *RestaurantService) GetRestaurant(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetWithMenu(ctx, id)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, apperror.NewNotFoundError("Restaurant")
	}
	return restaurant, nil
}

// UpdateRestaurantInput represents the update restaurant input
type UpdateRestaurantInput struct {
	Name        *string
	Description *string
	Address     *string
	Phone       *string
	IsOpen      *bool
}

// UpdateRestaurant updates a restaurant's details
func (s *RestaurantService) UpdateRestaurant(ctx context.Context, id uuid.UUID, input *UpdateRestaurantInput) (*entity.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, apperror.NewNotFoundError("Restaurant")
	}

	if input.Name != nil {
		restaurant.Name = *input.Name
	}
	if input.Description != nil {
		restaurant.Description = input.Description
	}
	if input.Address != nil {
		restaurant.Address = *input.Address
	}
	if input.Phone != nil {
		restaurant.Phone = input.Phone
	}
	if input.IsOpen != nil {
		restaurant.IsOpen = *input.IsOpen
	}

	if err := s.restaurantRepo.Update(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// DeleteRestaurant soft-deletes a restaurant
func (s *RestaurantService) DeleteRestaurant(ctx context.Context, id uuid.UUID) error {
	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if restaurant == nil {
		return apperror.NewNotFoundError("Restaurant")
	}
	return s.restaurantRepo.Delete(ctx, id)
}

// ListRestaurants returns restaurants with optional name search
func (s *RestaurantService) ListRestaurants(ctx context.Context, params *pagination.Params, search string) (*pagination.Page[entity.Restaurant], error) {
	if params == nil {
		params = pagination.DefaultParams()
	}
	params.Validate()

	restaurants, total, err := s.restaurantRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pg := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPage(restaurants, pg), nil
}

// UploadImage stores a restaurant image and records its path
func (s *RestaurantService) UploadImage(ctx context.Context, id uuid.UUID, filename string, r io.Reader) (*entity.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, apperror.NewNotFoundError("Restaurant")
	}

	path, err := s.store.Save(ctx, filename, r)
	if err != nil {
		return nil, err
	}

	if restaurant.Image != nil {
		// Best effort; a stale file on disk is not worth failing the upload
		_ = s.store.Delete(ctx, *restaurant.Image)
	}
	restaurant.Image = &path
	if err := s.restaurantRepo.Update(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// CreateMenuItemInput represents the create menu item input
type CreateMenuItemInput struct {
	Name        string
	Description *string
	Price       float64
	Available   *bool
}

// AddMenuItem adds a dish to a restaurant's menu
func (s *RestaurantService) AddMenuItem(ctx context.Context, restaurantID uuid.UUID, input *CreateMenuItemInput) (*entity.MenuItem, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, apperror.NewNotFoundError("Restaurant")
	}
	if input.Price <= 0 {
		return nil, apperror.NewValidationError("Price must be positive")
	}

	available := true
	if input.Available != nil {
		available = *input.Available
	}

	item := &entity.MenuItem{
		RestaurantID: restaurantID,
		Name:         input.Name,
		Description:  input.Description,
		Price:        utils.ToCents(input.Price),
		Available:    available,
	}
	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateMenuItemInput represents the update menu item input
type UpdateMenuItemInput struct {
	Name        *string
	Description *string
	Price       *float64
	Available   *bool
}

// UpdateMenuItem updates a menu item
func (s *RestaurantService) UpdateMenuItem(ctx context.Context, itemID uuid.UUID, input *UpdateMenuItemInput) (*entity.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, apperror.NewValidationError("Price must be positive")
		}
		item.Price = utils.ToCents(*input.Price)
	}
	if input.Available != nil {
		item.Available = *input.Available
	}

	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteMenuItem removes a dish from a menu
func (s *RestaurantService) DeleteMenuItem(ctx context.Context, itemID uuid.UUID) error {
	item, err := s.menuRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Menu item")
	}
	return s.menuRepo.Delete(ctx, itemID)
}
