package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/felixotieno/haraka-api/internal/domain/entity"
	"github.com/felixotieno/haraka-api/internal/domain/enum"
	"github.com/felixotieno/haraka-api/internal/domain/repository"
	"github.com/felixotieno/haraka-api/pkg/pagination"
)

// fakeLedgerRepo is an in-memory LedgerRepository for service tests. It
// mirrors the conditional-claim semantics of the real implementation,
// including full rollback on any conflict.
type fakeLedgerRepo struct {
	entries     map[uuid.UUID]*entity.LedgerEntry
	settlements map[uuid.UUID]*entity.Settlement

	// beforeCreateSettlement, when set, runs at the start of
	// CreateSettlement. Tests use it to mutate the store between the
	// service's precondition read and the claim, like a concurrent
	// settlement committing first.
	beforeCreateSettlement func()
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		entries:     make(map[uuid.UUID]*entity.LedgerEntry),
		settlements: make(map[uuid.UUID]*entity.Settlement),
	}
}

func (f *fakeLedgerRepo) CreateEntry(_ context.Context, entry *entity.LedgerEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	clone := *entry
	f.entries[entry.ID] = &clone
	return nil
}

func (f *fakeLedgerRepo) GetEntryByID(_ context.Context, id uuid.UUID) (*entity.LedgerEntry, error) {
	entry, ok := f.entries[id]
	if !ok {
		return nil, nil
	}
	clone := *entry
	return &clone, nil
}

func (f *fakeLedgerRepo) GetEntriesByIDs(_ context.Context, ids []uuid.UUID) ([]entity.LedgerEntry, error) {
	var out []entity.LedgerEntry
	for _, id := range ids {
		if entry, ok := f.entries[id]; ok {
			out = append(out, *entry)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) ListEntries(_ context.Context, driverID uuid.UUID, params *repository.EntryFilterParams) ([]entity.LedgerEntry, int64, error) {
	var matched []entity.LedgerEntry
	for _, entry := range f.entries {
		if entry.DriverID != driverID {
			continue
		}
		if params.Type != nil && entry.Type != *params.Type {
			continue
		}
		if params.Settled != nil && entry.IsSettled != *params.Settled {
			continue
		}
		if params.StartDate != nil && entry.CreatedAt.Before(*params.StartDate) {
			continue
		}
		if params.EndDate != nil && entry.CreatedAt.After(*params.EndDate) {
			continue
		}
		matched = append(matched, *entry)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := params.Pagination.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.Pagination.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeLedgerRepo) ListUnsettled(_ context.Context, driverID uuid.UUID) ([]entity.LedgerEntry, error) {
	var out []entity.LedgerEntry
	for _, entry := range f.entries {
		if entry.DriverID == driverID && !entry.IsSettled && entry.Type.Payable() {
			out = append(out, *entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeLedgerRepo) ListAllForDriver(_ context.Context, driverID uuid.UUID) ([]entity.LedgerEntry, error) {
	var out []entity.LedgerEntry
	for _, entry := range f.entries {
		if entry.DriverID == driverID {
			out = append(out, *entry)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) CreateSettlement(_ context.Context, settlement *entity.Settlement, entryIDs []uuid.UUID) ([]uuid.UUID, error) {
	if f.beforeCreateSettlement != nil {
		f.beforeCreateSettlement()
	}

	var conflicts []uuid.UUID
	for _, id := range entryIDs {
		entry, ok := f.entries[id]
		if !ok || entry.DriverID != settlement.DriverID || entry.IsSettled {
			conflicts = append(conflicts, id)
		}
	}
	if len(conflicts) > 0 {
		return conflicts, nil
	}

	if settlement.ID == uuid.Nil {
		settlement.ID = uuid.New()
	}
	settlement.CreatedAt = time.Now()
	clone := *settlement
	f.settlements[settlement.ID] = &clone

	settledAt := time.Now()
	for _, id := range entryIDs {
		entry := f.entries[id]
		entry.IsSettled = true
		entry.SettledAt = &settledAt
		sid := settlement.ID
		entry.SettlementID = &sid
	}

	marker := &entity.LedgerEntry{
		ID:          uuid.New(),
		DriverID:    settlement.DriverID,
		Type:        enum.EntryTypeSettlement,
		Amount:      -settlement.Amount,
		Description: "Settlement payout",
		IsSettled:   true,
		SettledAt:   &settledAt,
		CreatedAt:   time.Now(),
	}
	f.entries[marker.ID] = marker

	return nil, nil
}

func (f *fakeLedgerRepo) GetSettlementByID(_ context.Context, id uuid.UUID) (*entity.Settlement, error) {
	settlement, ok := f.settlements[id]
	if !ok {
		return nil, nil
	}
	clone := *settlement
	for _, entry := range f.entries {
		if entry.SettlementID != nil && *entry.SettlementID == id {
			clone.Entries = append(clone.Entries, *entry)
		}
	}
	return &clone, nil
}

func (f *fakeLedgerRepo) ListSettlements(_ context.Context, driverID uuid.UUID, params *pagination.Params) ([]entity.Settlement, int64, error) {
	var out []entity.Settlement
	for _, s := range f.settlements {
		if s.DriverID == driverID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))
	start := params.Offset()
	if start > len(out) {
		start = len(out)
	}
	end := start + params.PerPage
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (f *fakeLedgerRepo) ListSettlementsForDriver(_ context.Context, driverID uuid.UUID) ([]entity.Settlement, error) {
	var out []entity.Settlement
	for _, s := range f.settlements {
		if s.DriverID == driverID {
			out = append(out, *s)
		}
	}
	return out, nil
}

// fakeDriverRepo is an in-memory DriverRepository
type fakeDriverRepo struct {
	drivers map[uuid.UUID]*entity.Driver
}

func newFakeDriverRepo(drivers ...*entity.Driver) *fakeDriverRepo {
	f := &fakeDriverRepo{drivers: make(map[uuid.UUID]*entity.Driver)}
	for _, d := range drivers {
		if d.ID == uuid.Nil {
			d.ID = uuid.New()
		}
		f.drivers[d.ID] = d
	}
	return f
}

func (f *fakeDriverRepo) Create(_ context.Context, driver *entity.Driver) error {
	if driver.ID == uuid.Nil {
		driver.ID = uuid.New()
	}
	f.drivers[driver.ID] = driver
	return nil
}

func (f *fakeDriverRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Driver, error) {
	driver, ok := f.drivers[id]
	if !ok {
		return nil, nil
	}
	return driver, nil
}

func (f *fakeDriverRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*entity.Driver, error) {
	for _, d := range f.drivers {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakeDriverRepo) Update(_ context.Context, driver *entity.Driver) error {
	f.drivers[driver.ID] = driver
	return nil
}

func (f *fakeDriverRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.DriverStatus) error {
	if d, ok := f.drivers[id]; ok {
		d.Status = status
	}
	return nil
}

func (f *fakeDriverRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.drivers, id)
	return nil
}

func (f *fakeDriverRepo) List(_ context.Context, params *pagination.Params, search string, status *enum.DriverStatus) ([]entity.Driver, int64, error) {
	var out []entity.Driver
	for _, d := range f.drivers {
		if status != nil && d.Status != *status {
			continue
		}
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

// fakeUserRepo is an in-memory UserRepository
type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

// discardNotifier swallows notifications in tests
type discardNotifier struct{}

func (discardNotifier) Notify(context.Context, uuid.UUID, string, string) error { return nil }
