package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/identity"
	"github.com/wms/backend/internal/domain/ordering"
	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/procurement"
	"github.com/wms/backend/internal/domain/shared"
)

// MockQuoteRequestRepository is a mock implementation of QuoteRequestRepository
type MockQuoteRequestRepository struct {
	mock.Mock
}

func (m *MockQuoteRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.QuoteRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.QuoteRequest), args.Error(1)
}

func (m *MockQuoteRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.QuoteRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.QuoteRequest), args.Error(1)
}

func (m *MockQuoteRequestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuoteRequestRepository) Create(ctx context.Context, request *procurement.QuoteRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockQuoteRequestRepository) Save(ctx context.Context, request *procurement.QuoteRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockQuoteRequestRepository) SaveWithSelection(ctx context.Context, request *procurement.QuoteRequest, selectedQuoteID uuid.UUID) error {
	args := m.Called(ctx, request, selectedQuoteID)
	return args.Error(0)
}

// MockVendorQuoteRepository is a mock implementation of VendorQuoteRepository
type MockVendorQuoteRepository struct {
	mock.Mock
}

func (m *MockVendorQuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.VendorQuote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.VendorQuote), args.Error(1)
}

func (m *MockVendorQuoteRepository) FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]procurement.VendorQuote, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.VendorQuote), args.Error(1)
}

func (m *MockVendorQuoteRepository) CountByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx, requestIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

func (m *MockVendorQuoteRepository) Create(ctx context.Context, quote *procurement.VendorQuote, request *procurement.QuoteRequest) error {
	args := m.Called(ctx, quote, request)
	return args.Error(0)
}

// MockPurchaseOrderRepository is a mock implementation of PurchaseOrderRepository
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByQuoteRequestID(ctx context.Context, requestID uuid.UUID) (*ordering.PurchaseOrder, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.PurchaseOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordering.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseOrderRepository) CreateFromConversion(ctx context.Context, order *ordering.PurchaseOrder, request *procurement.QuoteRequest) error {
	args := m.Called(ctx, order, request)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Save(ctx context.Context, order *ordering.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

// MockVendorRepository is a mock implementation of VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Vendor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) DisplayNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]string), args.Error(1)
}

func (m *MockVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

// MockFundingSourceRepository is a mock implementation of FundingSourceRepository
type MockFundingSourceRepository struct {
	mock.Mock
}

func (m *MockFundingSourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.FundingSource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.FundingSource), args.Error(1)
}

func (m *MockFundingSourceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.FundingSource, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.FundingSource), args.Error(1)
}

func (m *MockFundingSourceRepository) Save(ctx context.Context, source *partner.FundingSource) error {
	args := m.Called(ctx, source)
	return args.Error(0)
}

// MockItemRepository is a mock implementation of ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.CatalogItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.CatalogItem), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.CatalogItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.CatalogItem), args.Error(1)
}

func (m *MockItemRepository) ItemNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]string), args.Error(1)
}

func (m *MockItemRepository) VariantNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]string), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *catalog.CatalogItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
