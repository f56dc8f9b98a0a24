package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/deckflow-admin/internal/domain"
	"github.com/spec-kit/deckflow-admin/internal/events"
)

// MockRequestRepository implements repository.RequestRepository.
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, request *domain.Request) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	args := m.Called(ctx, id)
	if req, ok := args.Get(0).(*domain.Request); ok {
		return req, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRequestRepository) GetDetailByID(ctx context.Context, id string) (*domain.RequestDetail, error) {
	args := m.Called(ctx, id)
	if detail, ok := args.Get(0).(*domain.RequestDetail); ok {
		return detail, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRequestRepository) ListDetails(ctx context.Context, limit, offset int) ([]domain.RequestDetail, error) {
	args := m.Called(ctx, limit, offset)
	if items, ok := args.Get(0).([]domain.RequestDetail); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRequestRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRequestRepository) ListSummaries(ctx context.Context) ([]domain.PublicRequestSummary, error) {
	args := m.Called(ctx)
	if items, ok := args.Get(0).([]domain.PublicRequestSummary); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRequestRepository) MarkReviewed(ctx context.Context, id string, status domain.RequestStatus, reviewerID string, note *string) (*domain.Request, error) {
	args := m.Called(ctx, id, status, reviewerID, note)
	if req, ok := args.Get(0).(*domain.Request); ok {
		return req, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockDeckRepository implements repository.DeckRepository.
type MockDeckRepository struct {
	mock.Mock
}

func (m *MockDeckRepository) Create(ctx context.Context, deck *domain.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *MockDeckRepository) GetByID(ctx context.Context, id string) (*domain.Deck, error) {
	args := m.Called(ctx, id)
	if deck, ok := args.Get(0).(*domain.Deck); ok {
		return deck, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeckRepository) GetByName(ctx context.Context, name string) (*domain.Deck, error) {
	args := m.Called(ctx, name)
	if deck, ok := args.Get(0).(*domain.Deck); ok {
		return deck, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeckRepository) AttachCards(ctx context.Context, deckID string, cardIDs []string) error {
	args := m.Called(ctx, deckID, cardIDs)
	return args.Error(0)
}

func (m *MockDeckRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository implements repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, role *domain.UserRole, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, role, limit, offset)
	if users, ok := args.Get(0).([]domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentRepository implements repository.PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if tx, ok := args.Get(0).(*domain.Transaction); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentRepository) ListPendingPayouts(ctx context.Context) ([]domain.PayoutWithUser, error) {
	args := m.Called(ctx)
	if payouts, ok := args.Get(0).([]domain.PayoutWithUser); ok {
		return payouts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentRepository) ListPayoutHistory(ctx context.Context) ([]domain.PayoutWithUser, error) {
	args := m.Called(ctx)
	if payouts, ok := args.Get(0).([]domain.PayoutWithUser); ok {
		return payouts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentRepository) RejectPayout(ctx context.Context, id, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockPaymentRepository) MonthlyRevenue(ctx context.Context, year int) (map[int]float64, error) {
	args := m.Called(ctx, year)
	if totals, ok := args.Get(0).(map[int]float64); ok {
		return totals, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentRepository) QuarterlyRevenue(ctx context.Context, year int) (map[int]float64, error) {
	args := m.Called(ctx, year)
	if totals, ok := args.Get(0).(map[int]float64); ok {
		return totals, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentRepository) TotalRevenue(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockPaymentRepository) PackageDistribution(ctx context.Context, year int) ([]domain.PackageCount, error) {
	args := m.Called(ctx, year)
	if counts, ok := args.Get(0).([]domain.PackageCount); ok {
		return counts, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPackageRepository implements repository.PackageRepository.
type MockPackageRepository struct {
	mock.Mock
}

func (m *MockPackageRepository) Create(ctx context.Context, pkg *domain.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

func (m *MockPackageRepository) Update(ctx context.Context, pkg *domain.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

func (m *MockPackageRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPackageRepository) GetByID(ctx context.Context, id string) (*domain.Package, error) {
	args := m.Called(ctx, id)
	if pkg, ok := args.Get(0).(*domain.Package); ok {
		return pkg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPackageRepository) List(ctx context.Context) ([]domain.Package, error) {
	args := m.Called(ctx)
	if pkgs, ok := args.Get(0).([]domain.Package); ok {
		return pkgs, args.Error(1)
	}
	return nil, args.Error(1)
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}
