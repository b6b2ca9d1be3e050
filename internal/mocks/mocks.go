package mocks

import (
	"context"

	"checkout-service/internal/domain"
	"checkout-service/internal/infra"

	"github.com/stretchr/testify/mock"
)

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) SaveProduct(product *domain.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockCatalogRepository) FindProductByID(id uint64) (*domain.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockCatalogRepository) UpdateProductStatus(id uint64, status domain.ProductStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockCatalogRepository) SavePrice(price *domain.Price) error {
	args := m.Called(price)
	return args.Error(0)
}

func (m *MockCatalogRepository) SaveDefaultPrice(price *domain.Price) error {
	args := m.Called(price)
	return args.Error(0)
}

func (m *MockCatalogRepository) FindPriceByID(id uint64) (*domain.Price, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Price), args.Error(1)
}

func (m *MockCatalogRepository) FindPricesByProductID(productID uint64) ([]domain.Price, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Price), args.Error(1)
}

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) SaveCart(cart *domain.Cart) error {
	args := m.Called(cart)
	return args.Error(0)
}

func (m *MockCartRepository) FindByID(id string) (*domain.Cart, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *MockCartRepository) SaveItem(item *domain.CartItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockCartRepository) FindItemByID(id uint64) (*domain.CartItem, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartItem), args.Error(1)
}

func (m *MockCartRepository) UpdateItemQuantity(id uint64, quantity int64) error {
	args := m.Called(id, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteItem(id uint64) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateFromCart(order *domain.Order, cartID string) error {
	args := m.Called(order, cartID)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(id uint64) (*domain.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByReference(reference string) (*domain.Order, error) {
	args := m.Called(reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByWorkspace(workspaceID uint64) ([]domain.Order, error) {
	args := m.Called(workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) RecordChargeResult(orderID uint64, to domain.OrderStatus, paymentRef, declineReason string) error {
	args := m.Called(orderID, to, paymentRef, declineReason)
	return args.Error(0)
}

func (m *MockOrderRepository) TransitionStatus(orderID uint64, to domain.OrderStatus, actor string) (*domain.Order, error) {
	args := m.Called(orderID, to, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ApplyPaymentSucceeded(eventID, orderReference, paymentRef string) error {
	args := m.Called(eventID, orderReference, paymentRef)
	return args.Error(0)
}

func (m *MockOrderRepository) ApplyPaymentFailed(eventID, orderReference, declineReason string) error {
	args := m.Called(eventID, orderReference, declineReason)
	return args.Error(0)
}

func (m *MockOrderRepository) ApplyRefund(eventID, orderReference string, amount int64, partial bool) error {
	args := m.Called(eventID, orderReference, amount, partial)
	return args.Error(0)
}

func (m *MockOrderRepository) AggregateCompletedByDay(workspaceID uint64) ([]domain.AnalyticsBucket, error) {
	args := m.Called(workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AnalyticsBucket), args.Error(1)
}

type MockTaxRateRepository struct {
	mock.Mock
}

func (m *MockTaxRateRepository) Upsert(rate *domain.TaxRate) error {
	args := m.Called(rate)
	return args.Error(0)
}

func (m *MockTaxRateRepository) FindByWorkspace(workspaceID uint64) ([]domain.TaxRate, error) {
	args := m.Called(workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxRate), args.Error(1)
}

func (m *MockTaxRateRepository) FindByJurisdiction(workspaceID uint64, country, state string) (*domain.TaxRate, error) {
	args := m.Called(workspaceID, country, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxRate), args.Error(1)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) Charge(ctx context.Context, paymentMethodID string, amount int64, currency string) (*infra.ChargeResult, error) {
	args := m.Called(ctx, paymentMethodID, amount, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infra.ChargeResult), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	args := m.Called(ctx, routingKey, data)
	return args.Error(0)
}

type MockTaxCalculator struct {
	mock.Mock
}

func (m *MockTaxCalculator) CalculateTax(ctx context.Context, workspaceID uint64, items []domain.TaxableItem, shipping, billing *domain.Address) (*domain.TaxBreakdown, error) {
	args := m.Called(ctx, workspaceID, items, shipping, billing)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxBreakdown), args.Error(1)
}
