package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/felixotieno/haraka-api/internal/domain/entity"
	"github.com/felixotieno/haraka-api/internal/domain/enum"
	"github.com/felixotieno/haraka-api/internal/domain/repository"
	"github.com/felixotieno/haraka-api/pkg/apperror"
	"github.com/felixotieno/haraka-api/pkg/notify"
	"github.com/felixotieno/haraka-api/pkg/pagination"
	"github.com/felixotieno/haraka-api/pkg/utils"
)

// OrderService handles the order lifecycle. Delivering an order is the main
// feeder of the driver ledger: it records the driver's earning and the
// platform's commission fee.
type OrderService struct {
	orderRepo      repository.OrderRepository
	itemRepo       repository.OrderItemRepository
	menuRepo       repository.MenuItemRepository
	restaurantRepo repository.RestaurantRepository
	driverRepo     repository.DriverRepository
	ledgerRepo     repository.LedgerRepository
	notifier       notify.Notifier
	log            *logrus.Logger
	commissionRate float64
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	itemRepo repository.OrderItemRepository,
	menuRepo repository.MenuItemRepository,
	restaurantRepo repository.RestaurantRepository,
	driverRepo repository.DriverRepository,
	ledgerRepo repository.LedgerRepository,
	notifier notify.Notifier,
	log *logrus.Logger,
	commissionRate float64,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		itemRepo:       itemRepo,
		menuRepo:       menuRepo,
		restaurantRepo: restaurantRepo,
		driverRepo:     driverRepo,
		ledgerRepo:     ledgerRepo,
		notifier:       notifier,
		log:            log,
		commissionRate: commissionRate,
	}
}

// OrderItemInput is one requested line item
type OrderItemInput struct {
	MenuItemID uuid.UUID
	Quantity   int
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	CustomerID      uuid.UUID
	RestaurantID    uuid.UUID
	Items           []OrderItemInput
	DeliveryAddress string
	DeliveryFee     float64
	Tip             float64
}

// CreateOrder places a new order, pricing each line from the current menu
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError("Order must contain at least one item")
	}
	if input.DeliveryAddress == "" {
		return nil, apperror.NewValidationError("Delivery address is required")
	}
	if input.DeliveryFee < 0 || input.Tip < 0 {
		return nil, apperror.NewValidationError("Delivery fee and tip cannot be negative")
	}

	restaurant, err := s.restaurantRepo.GetByID(ctx, input.RestaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, apperror.NewNotFoundError("Restaurant")
	}
	if !restaurant.IsOpen {
		return nil, apperror.NewConflictError("Restaurant is not accepting orders", nil)
	}

	ids := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		if item.Quantity < 1 {
			return nil, apperror.NewValidationError("Item quantity must be at least 1")
		}
		ids[i] = item.MenuItemID
	}
	menuItems, err := s.menuRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*entity.MenuItem, len(menuItems))
	for i := range menuItems {
		byID[menuItems[i].ID] = &menuItems[i]
	}

	var subTotal int64
	orderItems := make([]entity.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		menuItem, ok := byID[item.MenuItemID]
		if !ok || menuItem.RestaurantID != input.RestaurantID {
			return nil, apperror.NewNotFoundError("Menu item")
		}
		if !menuItem.Available {
			return nil, apperror.NewConflictError("Menu item is unavailable",
				map[string]interface{}{"menu_item_id": menuItem.ID})
		}
		lineTotal := menuItem.Price * int64(item.Quantity)
		subTotal += lineTotal
		orderItems = append(orderItems, entity.OrderItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			UnitPrice:  menuItem.Price,
			Total:      lineTotal,
		})
	}

	deliveryFee := utils.ToCents(input.DeliveryFee)
	tip := utils.ToCents(input.Tip)

	order := &entity.Order{
		CustomerID:      input.CustomerID,
		RestaurantID:    input.RestaurantID,
		Status:          enum.OrderStatusPending,
		SubTotal:        subTotal,
		DeliveryFee:     deliveryFee,
		Tip:             tip,
		Total:           subTotal + deliveryFee + tip,
		DeliveryAddress: input.DeliveryAddress,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	for i := range orderItems {
		orderItems[i].OrderID = order.ID
	}
	if err := s.itemRepo.CreateBatch(ctx, orderItems); err != nil {
		return nil, err
	}
	order.Items = orderItems

	return order, nil
}

// GetOrder retrieves an order with its items
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders returns orders matching the given filters
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.Page[entity.Order], error) {
	if params == nil {
		params = &repository.OrderFilterParams{}
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultParams()
	}
	params.Pagination.Validate()

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pg := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPage(orders, pg), nil
}

// UpdateStatusInput represents a lifecycle transition request
type UpdateStatusInput struct {
	Status   enum.OrderStatus
	DriverID *uuid.UUID
}

// UpdateStatus advances an order through its lifecycle. Accepting requires a
// driver; delivering records the driver's ledger entries.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, input *UpdateStatusInput) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if !order.Status.CanTransitionTo(input.Status) {
		return nil, apperror.NewConflictError(
			fmt.Sprintf("Cannot transition order from %s to %s", order.Status, input.Status), nil)
	}

	if input.Status == enum.OrderStatusAccepted {
		if input.DriverID == nil {
			return nil, apperror.NewValidationError("Accepting an order requires a driver")
		}
		driver, err := s.driverRepo.GetByID(ctx, *input.DriverID)
		if err != nil {
			return nil, err
		}
		if driver == nil {
			return nil, apperror.NewNotFoundError("Driver")
		}
		if driver.Status == enum.DriverStatusOffline {
			return nil, apperror.NewConflictError("Driver is offline", nil)
		}
		order.DriverID = input.DriverID
	}

	if input.Status == enum.OrderStatusDelivered {
		if order.DriverID == nil {
			return nil, apperror.NewConflictError("Order has no assigned driver", nil)
		}
		now := time.Now()
		order.DeliveredAt = &now
		order.Status = input.Status
		// The entries and the status flip commit together: a failed
		// transition leaves the ledger untouched and can be retried, and a
		// retry after success is rejected by the lifecycle check above.
		entries := s.deliveryEntries(order)
		if err := s.orderRepo.UpdateWithEntries(ctx, order, entries); err != nil {
			return nil, err
		}
		s.notifyDelivery(ctx, order)
		return order, nil
	}

	order.Status = input.Status
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// deliveryEntries builds the ledger entries for a delivered order. The
// earning is the delivery fee plus tip; the commission is a negative fee
// entry computed from the configured rate on the delivery fee only, never
// the tip. A free delivery with no tip produces no entries at all.
func (s *OrderService) deliveryEntries(order *entity.Order) []*entity.LedgerEntry {
	driverID := *order.DriverID
	orderID := order.ID

	var entries []*entity.LedgerEntry

	gross := order.DeliveryFee + order.Tip
	if gross > 0 {
		entries = append(entries, &entity.LedgerEntry{
			DriverID:    driverID,
			OrderID:     &orderID,
			Type:        enum.EntryTypeEarning,
			Amount:      gross,
			Description: fmt.Sprintf("Delivery earnings for order %s", orderID),
			Metadata: entity.JSONMap{
				"delivery_fee": utils.FromCents(order.DeliveryFee),
				"tip":          utils.FromCents(order.Tip),
			},
		})
	}

	commission := int64(math.Round(float64(order.DeliveryFee) * s.commissionRate))
	if commission > 0 {
		entries = append(entries, &entity.LedgerEntry{
			DriverID:    driverID,
			OrderID:     &orderID,
			Type:        enum.EntryTypeFee,
			Amount:      -commission,
			Description: fmt.Sprintf("Platform commission for order %s", orderID),
			Metadata: entity.JSONMap{
				"commission_rate": s.commissionRate,
			},
		})
	}

	return entries
}

func (s *OrderService) notifyDelivery(ctx context.Context, order *entity.Order) {
	driverID := *order.DriverID
	gross := order.DeliveryFee + order.Tip
	commission := int64(math.Round(float64(order.DeliveryFee) * s.commissionRate))

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err == nil && driver != nil {
		notify.Send(s.notifier, s.log, driver.UserID, "Delivery completed",
			fmt.Sprintf("You earned %.2f for order %s", utils.FromCents(gross-commission), order.ID))
	}

	s.log.WithFields(logrus.Fields{
		"order_id":   order.ID,
		"driver_id":  driverID,
		"earning":    utils.FromCents(gross),
		"commission": utils.FromCents(commission),
	}).Info("delivery earnings recorded")
}
