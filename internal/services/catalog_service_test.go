package services

import (
	"context"
	"testing"

	"checkout-service/internal/domain"
	"checkout-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCatalogService_CreatePrice(t *testing.T) {
	tests := []struct {
		name          string
		price         *domain.Price
		setupMocks    func(*mocks.MockCatalogRepository)
		expectedError string
		wantDefault   bool
	}{
		{
			name:  "one-time price created",
			price: &domain.Price{ProductID: TestProductID, Type: domain.PriceTypeOneTime, Amount: 1000, Currency: "USD"},
			setupMocks: func(repo *mocks.MockCatalogRepository) {
				repo.On("FindProductByID", TestProductID).Return(CreateTestProduct(TestProductID, true), nil)
				repo.On("SavePrice", mock.AnythingOfType("*domain.Price")).Return(nil)
			},
		},
		{
			name:  "default price switches atomically",
			price: &domain.Price{ProductID: TestProductID, Type: domain.PriceTypeOneTime, Amount: 2000, Currency: "USD", IsDefault: true},
			setupMocks: func(repo *mocks.MockCatalogRepository) {
				repo.On("FindProductByID", TestProductID).Return(CreateTestProduct(TestProductID, true), nil)
				repo.On("SaveDefaultPrice", mock.AnythingOfType("*domain.Price")).Return(nil)
			},
			wantDefault: true,
		},
		{
			name:          "payment plan needs two installments",
			price:         &domain.Price{ProductID: TestProductID, Type: domain.PriceTypePaymentPlan, Amount: 9000, Currency: "USD", Installments: 1},
			setupMocks:    func(repo *mocks.MockCatalogRepository) {},
			expectedError: "installments must be >= 2",
		},
		{
			name:          "interval rejected on one-time",
			price:         &domain.Price{ProductID: TestProductID, Type: domain.PriceTypeOneTime, Amount: 1000, Currency: "USD", Interval: "month"},
			setupMocks:    func(repo *mocks.MockCatalogRepository) {},
			expectedError: "interval fields are not allowed",
		},
		{
			name:  "product missing",
			price: &domain.Price{ProductID: 999, Type: domain.PriceTypeOneTime, Amount: 1000, Currency: "USD"},
			setupMocks: func(repo *mocks.MockCatalogRepository) {
				repo.On("FindProductByID", uint64(999)).Return(nil, nil)
			},
			expectedError: "product not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockCatalogRepository)
			tt.setupMocks(repo)

			service := NewCatalogService(repo)
			result, err := service.CreatePrice(context.Background(), tt.price)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.Equal(t, tt.wantDefault, result.IsDefault)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestCatalogService_GetPrice(t *testing.T) {
	repo := new(mocks.MockCatalogRepository)
	repo.On("FindPriceByID", TestPriceID).Return(CreateTestPrice(TestPriceID, TestProductID, 1000), nil)
	repo.On("FindPriceByID", uint64(404)).Return(nil, nil)

	service := NewCatalogService(repo)

	price, err := service.GetPrice(context.Background(), TestPriceID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1000), price.Amount)

	missing, err := service.GetPrice(context.Background(), 404)
	assert.Nil(t, missing)
	var nf *domain.NotFoundError
	assert.ErrorAs(t, err, &nf)

	repo.AssertExpectations(t)
}

func TestCatalogService_CreateProduct(t *testing.T) {
	repo := new(mocks.MockCatalogRepository)
	repo.On("SaveProduct", mock.AnythingOfType("*domain.Product")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.Product).ID = 7
	})

	service := NewCatalogService(repo)

	product, err := service.CreateProduct(context.Background(), &domain.Product{
		WorkspaceID: TestWorkspaceID,
		Name:        "Course",
		Type:        domain.ProductTypeDigital,
	})
	assert.NoError(t, err)
	assert.Equal(t, uint64(7), product.ID)
	assert.Equal(t, domain.ProductStatusActive, product.Status)

	_, err = service.CreateProduct(context.Background(), &domain.Product{Name: "x", Type: "gadget"})
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)

	repo.AssertExpectations(t)
}
