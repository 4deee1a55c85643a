package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/felixotieno/haraka-api/internal/domain/entity"
	"github.com/felixotieno/haraka-api/internal/domain/enum"
	"github.com/felixotieno/haraka-api/internal/domain/repository"
	"github.com/felixotieno/haraka-api/pkg/apperror"
	"github.com/felixotieno/haraka-api/pkg/pagination"
)

type fakeOrderRepo struct {
	orders map[uuid.UUID]*entity.Order
	ledger *fakeLedgerRepo

	// failNextUpdates makes the next N update calls fail without
	// persisting anything, mirroring a rolled-back transaction.
	failNextUpdates int
}

func newFakeOrderRepo(ledger *fakeLedgerRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order), ledger: ledger}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	clone := *order
	f.orders[order.ID] = &clone
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	clone := *order
	return &clone, nil
}

func (f *fakeOrderRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeOrderRepo) Update(_ context.Context, order *entity.Order) error {
	if f.failNextUpdates > 0 {
		f.failNextUpdates--
		return errors.New("order update failed")
	}
	clone := *order
	f.orders[order.ID] = &clone
	return nil
}

func (f *fakeOrderRepo) UpdateWithEntries(ctx context.Context, order *entity.Order, entries []*entity.LedgerEntry) error {
	if f.failNextUpdates > 0 {
		f.failNextUpdates--
		return errors.New("order update failed")
	}
	for _, entry := range entries {
		if err := f.ledger.CreateEntry(ctx, entry); err != nil {
			return err
		}
	}
	clone := *order
	f.orders[order.ID] = &clone
	return nil
}

func (f *fakeOrderRepo) List(_ context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	var out []entity.Order
	for _, o := range f.orders {
		if params.Status != nil && o.Status != *params.Status {
			continue
		}
		if params.DriverID != nil && (o.DriverID == nil || *o.DriverID != *params.DriverID) {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

type fakeOrderItemRepo struct {
	items []entity.OrderItem
}

func (f *fakeOrderItemRepo) CreateBatch(_ context.Context, items []entity.OrderItem) error {
	f.items = append(f.items, items...)
	return nil
}

func (f *fakeOrderItemRepo) GetByOrderID(_ context.Context, orderID uuid.UUID) ([]entity.OrderItem, error) {
	var out []entity.OrderItem
	for _, item := range f.items {
		if item.OrderID == orderID {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeMenuRepo struct {
	items map[uuid.UUID]*entity.MenuItem
}

func newFakeMenuRepo(items ...*entity.MenuItem) *fakeMenuRepo {
	f := &fakeMenuRepo{items: make(map[uuid.UUID]*entity.MenuItem)}
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		f.items[item.ID] = item
	}
	return f
}

func (f *fakeMenuRepo) Create(_ context.Context, item *entity.MenuItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeMenuRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	return item, nil
}

func (f *fakeMenuRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.MenuItem, error) {
	var out []entity.MenuItem
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeMenuRepo) ListByRestaurant(_ context.Context, restaurantID uuid.UUID) ([]entity.MenuItem, error) {
	var out []entity.MenuItem
	for _, item := range f.items {
		if item.RestaurantID == restaurantID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeMenuRepo) Update(_ context.Context, item *entity.MenuItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeMenuRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

type fakeRestaurantRepo struct {
	restaurants map[uuid.UUID]*entity.Restaurant
}

func newFakeRestaurantRepo(restaurants ...*entity.Restaurant) *fakeRestaurantRepo {
	f := &fakeRestaurantRepo{restaurants: make(map[uuid.UUID]*entity.Restaurant)}
	for _, r := range restaurants {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		f.restaurants[r.ID] = r
	}
	return f
}

func (f *fakeRestaurantRepo) Create(_ context.Context, restaurant *entity.Restaurant) error {
	if restaurant.ID == uuid.Nil {
		restaurant.ID = uuid.New()
	}
	f.restaurants[restaurant.ID] = restaurant
	return nil
}

func (f *fakeRestaurantRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Restaurant, error) {
	restaurant, ok := f.restaurants[id]
	if !ok {
		return nil, nil
	}
	return restaurant, nil
}

func (f *fakeRestaurantRepo) GetWithMenu(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeRestaurantRepo) Update(_ context.Context, restaurant *entity.Restaurant) error {
	f.restaurants[restaurant.ID] = restaurant
	return nil
}

func (f *fakeRestaurantRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.restaurants, id)
	return nil
}

func (f *fakeRestaurantRepo) List(_ context.Context, params *pagination.Params, search string) ([]entity.Restaurant, int64, error) {
	var out []entity.Restaurant
	for _, r := range f.restaurants {
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

type orderFixture struct {
	svc        *OrderService
	orderRepo  *fakeOrderRepo
	ledgerRepo *fakeLedgerRepo
	driver     *entity.Driver
	restaurant *entity.Restaurant
	menuItem   *entity.MenuItem
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	driver := &entity.Driver{ID: uuid.New(), UserID: uuid.New(), Name: "Kamau", Status: enum.DriverStatusAvailable}
	restaurant := &entity.Restaurant{ID: uuid.New(), OwnerID: uuid.New(), Name: "Mama Oliech", IsOpen: true}
	menuItem := &entity.MenuItem{
		ID:           uuid.New(),
		RestaurantID: restaurant.ID,
		Name:         "Tilapia",
		Price:        85000, // 850.00
		Available:    true,
	}

	ledgerRepo := newFakeLedgerRepo()
	orderRepo := newFakeOrderRepo(ledgerRepo)
	svc := NewOrderService(
		orderRepo,
		&fakeOrderItemRepo{},
		newFakeMenuRepo(menuItem),
		newFakeRestaurantRepo(restaurant),
		newFakeDriverRepo(driver),
		ledgerRepo,
		discardNotifier{},
		testLogger(),
		0.20,
	)

	return &orderFixture{
		svc:        svc,
		orderRepo:  orderRepo,
		ledgerRepo: ledgerRepo,
		driver:     driver,
		restaurant: restaurant,
		menuItem:   menuItem,
	}
}

func (fx *orderFixture) placeOrder(t *testing.T) *entity.Order {
	t.Helper()
	order, err := fx.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CustomerID:      uuid.New(),
		RestaurantID:    fx.restaurant.ID,
		Items:           []OrderItemInput{{MenuItemID: fx.menuItem.ID, Quantity: 2}},
		DeliveryAddress: "Kilimani, Nairobi",
		DeliveryFee:     150.00,
		Tip:             50.00,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func (fx *orderFixture) advance(t *testing.T, orderID uuid.UUID, status enum.OrderStatus, driverID *uuid.UUID) *entity.Order {
	t.Helper()
	order, err := fx.svc.UpdateStatus(context.Background(), orderID, &UpdateStatusInput{
		Status:   status,
		DriverID: driverID,
	})
	if err != nil {
		t.Fatalf("transition to %s: %v", status, err)
	}
	return order
}

func TestCreateOrderPricesFromMenu(t *testing.T) {
	fx := newOrderFixture(t)
	order := fx.placeOrder(t)

	if order.SubTotal != 170000 {
		t.Errorf("sub total = %d cents, want 170000", order.SubTotal)
	}
	if order.Total != 170000+15000+5000 {
		t.Errorf("total = %d cents, want 190000", order.Total)
	}
	if order.Status != enum.OrderStatusPending {
		t.Errorf("status = %s, want pending", order.Status)
	}
}

func TestDeliveryWritesLedgerEntries(t *testing.T) {
	fx := newOrderFixture(t)
	order := fx.placeOrder(t)

	fx.advance(t, order.ID, enum.OrderStatusAccepted, &fx.driver.ID)
	fx.advance(t, order.ID, enum.OrderStatusPickedUp, nil)
	delivered := fx.advance(t, order.ID, enum.OrderStatusDelivered, nil)

	if delivered.DeliveredAt == nil {
		t.Error("delivered_at not set")
	}

	entries, _ := fx.ledgerRepo.ListAllForDriver(context.Background(), fx.driver.ID)
	var earning, fee *entity.LedgerEntry
	for i := range entries {
		switch entries[i].Type {
		case enum.EntryTypeEarning:
			earning = &entries[i]
		case enum.EntryTypeFee:
			fee = &entries[i]
		}
	}

	if earning == nil {
		t.Fatal("no earning entry written on delivery")
	}
	// delivery fee 150.00 + tip 50.00
	if earning.Amount != 20000 {
		t.Errorf("earning = %d cents, want 20000", earning.Amount)
	}
	if earning.OrderID == nil || *earning.OrderID != order.ID {
		t.Error("earning entry not linked to order")
	}

	if fee == nil {
		t.Fatal("no commission fee entry written on delivery")
	}
	// 20% of the 150.00 delivery fee, tip excluded
	if fee.Amount != -3000 {
		t.Errorf("commission = %d cents, want -3000", fee.Amount)
	}
}

func TestDeliveryRetryDoesNotDoubleCredit(t *testing.T) {
	fx := newOrderFixture(t)
	order := fx.placeOrder(t)

	fx.advance(t, order.ID, enum.OrderStatusAccepted, &fx.driver.ID)
	fx.advance(t, order.ID, enum.OrderStatusPickedUp, nil)

	fx.orderRepo.failNextUpdates = 1
	_, err := fx.svc.UpdateStatus(context.Background(), order.ID, &UpdateStatusInput{
		Status: enum.OrderStatusDelivered,
	})
	if err == nil {
		t.Fatal("expected the first delivered transition to fail")
	}

	stored, _ := fx.orderRepo.GetByID(context.Background(), order.ID)
	if stored.Status != enum.OrderStatusPickedUp {
		t.Fatalf("order status after failed transition = %s, want picked_up", stored.Status)
	}
	entries, _ := fx.ledgerRepo.ListAllForDriver(context.Background(), fx.driver.ID)
	if len(entries) != 0 {
		t.Fatalf("failed transition wrote %d ledger entries, want 0", len(entries))
	}

	fx.advance(t, order.ID, enum.OrderStatusDelivered, nil)

	entries, _ = fx.ledgerRepo.ListAllForDriver(context.Background(), fx.driver.ID)
	var earningCount int
	var earningTotal int64
	for _, e := range entries {
		if e.Type == enum.EntryTypeEarning {
			earningCount++
			earningTotal += e.Amount
		}
	}
	if earningCount != 1 || earningTotal != 20000 {
		t.Errorf("driver credited %d earning entries totalling %d cents, want exactly 1 of 20000",
			earningCount, earningTotal)
	}

	_, err = fx.svc.UpdateStatus(context.Background(), order.ID, &UpdateStatusInput{
		Status: enum.OrderStatusDelivered,
	})
	if err == nil {
		t.Fatal("re-delivering a delivered order must fail")
	}
}

func TestFreeDeliveryWritesNoEntries(t *testing.T) {
	fx := newOrderFixture(t)
	order, err := fx.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CustomerID:      uuid.New(),
		RestaurantID:    fx.restaurant.ID,
		Items:           []OrderItemInput{{MenuItemID: fx.menuItem.ID, Quantity: 1}},
		DeliveryAddress: "Westlands, Nairobi",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	fx.advance(t, order.ID, enum.OrderStatusAccepted, &fx.driver.ID)
	fx.advance(t, order.ID, enum.OrderStatusPickedUp, nil)
	delivered := fx.advance(t, order.ID, enum.OrderStatusDelivered, nil)

	if delivered.Status != enum.OrderStatusDelivered {
		t.Errorf("status = %s, want delivered", delivered.Status)
	}
	entries, _ := fx.ledgerRepo.ListAllForDriver(context.Background(), fx.driver.ID)
	if len(entries) != 0 {
		t.Errorf("zero-fee zero-tip delivery wrote %d ledger entries, want 0", len(entries))
	}
}

func TestOrderLifecycleRejectsSkips(t *testing.T) {
	fx := newOrderFixture(t)
	order := fx.placeOrder(t)

	_, err := fx.svc.UpdateStatus(context.Background(), order.ID, &UpdateStatusInput{
		Status: enum.OrderStatusDelivered,
	})
	if err == nil {
		t.Fatal("pending order must not jump to delivered")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", appErr.Code)
	}
}

func TestAcceptRequiresDriver(t *testing.T) {
	fx := newOrderFixture(t)
	order := fx.placeOrder(t)

	_, err := fx.svc.UpdateStatus(context.Background(), order.ID, &UpdateStatusInput{
		Status: enum.OrderStatusAccepted,
	})
	if err == nil {
		t.Fatal("accept without driver must fail")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", appErr.Code)
	}
}

func TestCancelDeliveredOrderRejected(t *testing.T) {
	fx := newOrderFixture(t)
	order := fx.placeOrder(t)

	fx.advance(t, order.ID, enum.OrderStatusAccepted, &fx.driver.ID)
	fx.advance(t, order.ID, enum.OrderStatusPickedUp, nil)
	fx.advance(t, order.ID, enum.OrderStatusDelivered, nil)

	_, err := fx.svc.UpdateStatus(context.Background(), order.ID, &UpdateStatusInput{
		Status: enum.OrderStatusCancelled,
	})
	if err == nil {
		t.Fatal("delivered order must not be cancellable")
	}
}

func TestCreateOrderClosedRestaurant(t *testing.T) {
	fx := newOrderFixture(t)
	fx.restaurant.IsOpen = false

	_, err := fx.svc.CreateOrder(context.Background(), &CreateOrderInput{
		CustomerID:      uuid.New(),
		RestaurantID:    fx.restaurant.ID,
		Items:           []OrderItemInput{{MenuItemID: fx.menuItem.ID, Quantity: 1}},
		DeliveryAddress: "CBD",
	})
	if err == nil {
		t.Fatal("closed restaurant must reject orders")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", appErr.Code)
	}
}
