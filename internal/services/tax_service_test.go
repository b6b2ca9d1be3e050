package services

import (
	"context"
	"testing"

	"checkout-service/internal/domain"
	"checkout-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestTaxService_CalculateTax(t *testing.T) {
	us := &domain.Address{Country: "US", State: "CA"}
	de := &domain.Address{Country: "DE"}

	tests := []struct {
		name        string
		items       []domain.TaxableItem
		shipping    *domain.Address
		billing     *domain.Address
		setupMocks  func(*mocks.MockTaxRateRepository)
		wantPerItem []int64
		wantTotal   int64
	}{
		{
			name:     "taxable item at ten percent",
			items:    []domain.TaxableItem{{Amount: 1000, Quantity: 2, Taxable: true}},
			shipping: de,
			setupMocks: func(repo *mocks.MockTaxRateRepository) {
				repo.On("FindByJurisdiction", TestWorkspaceID, "DE", "").Return(CreateTestTaxRate("DE", "", 0.10), nil)
			},
			wantPerItem: []int64{200},
			wantTotal:   200,
		},
		{
			name:     "non-taxable items contribute zero",
			items:    []domain.TaxableItem{{Amount: 1000, Quantity: 2, Taxable: true}, {Amount: 500, Quantity: 1, Taxable: false}},
			shipping: de,
			setupMocks: func(repo *mocks.MockTaxRateRepository) {
				repo.On("FindByJurisdiction", TestWorkspaceID, "DE", "").Return(CreateTestTaxRate("DE", "", 0.10), nil)
			},
			wantPerItem: []int64{200, 0},
			wantTotal:   200,
		},
		{
			name:     "fractional tax rounds half up",
			items:    []domain.TaxableItem{{Amount: 333, Quantity: 1, Taxable: true}},
			shipping: us,
			setupMocks: func(repo *mocks.MockTaxRateRepository) {
				repo.On("FindByJurisdiction", TestWorkspaceID, "US", "CA").Return(CreateTestTaxRate("US", "CA", 0.075), nil)
			},
			wantPerItem: []int64{25},
			wantTotal:   25,
		},
		{
			name:     "shipping address preferred over billing",
			items:    []domain.TaxableItem{{Amount: 1000, Quantity: 1, Taxable: true}},
			shipping: us,
			billing:  de,
			setupMocks: func(repo *mocks.MockTaxRateRepository) {
				repo.On("FindByJurisdiction", TestWorkspaceID, "US", "CA").Return(CreateTestTaxRate("US", "CA", 0.0725), nil)
			},
			wantPerItem: []int64{73},
			wantTotal:   73,
		},
		{
			name:    "billing used when shipping absent",
			items:   []domain.TaxableItem{{Amount: 1000, Quantity: 1, Taxable: true}},
			billing: de,
			setupMocks: func(repo *mocks.MockTaxRateRepository) {
				repo.On("FindByJurisdiction", TestWorkspaceID, "DE", "").Return(CreateTestTaxRate("DE", "", 0.19), nil)
			},
			wantPerItem: []int64{190},
			wantTotal:   190,
		},
		{
			name:        "no address means no tax",
			items:       []domain.TaxableItem{{Amount: 1000, Quantity: 5, Taxable: true}},
			setupMocks:  func(repo *mocks.MockTaxRateRepository) {},
			wantPerItem: []int64{0},
			wantTotal:   0,
		},
		{
			name:     "unconfigured jurisdiction means zero tax",
			items:    []domain.TaxableItem{{Amount: 1000, Quantity: 1, Taxable: true}},
			shipping: &domain.Address{Country: "JP"},
			setupMocks: func(repo *mocks.MockTaxRateRepository) {
				repo.On("FindByJurisdiction", TestWorkspaceID, "JP", "").Return(nil, nil)
			},
			wantPerItem: []int64{0},
			wantTotal:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockTaxRateRepository)
			tt.setupMocks(repo)

			service := NewTaxService(repo)
			result, err := service.CalculateTax(context.Background(), TestWorkspaceID, tt.items, tt.shipping, tt.billing)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantPerItem, result.PerItemTax)
			assert.Equal(t, tt.wantTotal, result.TotalTax)

			repo.AssertExpectations(t)
		})
	}
}

func TestTaxService_CalculateTaxDeterministic(t *testing.T) {
	repo := new(mocks.MockTaxRateRepository)
	repo.On("FindByJurisdiction", TestWorkspaceID, "DE", "").Return(CreateTestTaxRate("DE", "", 0.19), nil)

	service := NewTaxService(repo)
	items := []domain.TaxableItem{
		{Amount: 1999, Quantity: 3, Taxable: true},
		{Amount: 333, Quantity: 7, Taxable: true},
		{Amount: 50, Quantity: 1, Taxable: false},
	}
	addr := &domain.Address{Country: "DE"}

	first, err := service.CalculateTax(context.Background(), TestWorkspaceID, items, addr, nil)
	assert.NoError(t, err)
	second, err := service.CalculateTax(context.Background(), TestWorkspaceID, items, addr, nil)
	assert.NoError(t, err)

	assert.Equal(t, first.PerItemTax, second.PerItemTax)
	assert.Equal(t, first.TotalTax, second.TotalTax)
}

func TestTaxService_ValidateTaxID(t *testing.T) {
	tests := []struct {
		name          string
		taxID         string
		country       string
		wantValid     bool
		wantFormatted string
		expectedError string
	}{
		{name: "valid german vat", taxID: "DE123456789", country: "DE", wantValid: true, wantFormatted: "DE123456789"},
		{name: "german vat without prefix", taxID: "123 456 789", country: "DE", wantValid: true, wantFormatted: "DE123456789"},
		{name: "german vat too short", taxID: "DE12345", country: "DE", wantValid: false},
		{name: "valid belgian checksum", taxID: "BE1234567894", country: "BE", wantValid: true, wantFormatted: "BE1234567894"},
		{name: "belgian checksum mismatch", taxID: "BE1234567800", country: "BE", wantValid: false},
		{name: "valid french key", taxID: "FR32123456789", country: "FR", wantValid: true, wantFormatted: "FR32123456789"},
		{name: "french key mismatch", taxID: "FR00123456789", country: "FR", wantValid: false},
		{name: "valid dutch vat", taxID: "NL123456789B01", country: "NL", wantValid: true, wantFormatted: "NL123456789B01"},
		{name: "valid uk vat", taxID: "GB123456789", country: "GB", wantValid: true, wantFormatted: "GB123456789"},
		{name: "unsupported country is not an error", taxID: "US123456789", country: "US", wantValid: false},
		{name: "empty tax id", taxID: "   ", country: "DE", expectedError: "tax id is required"},
		{name: "invalid characters", taxID: "DE12#45", country: "DE", expectedError: "invalid characters"},
		{name: "bad country code", taxID: "DE123456789", country: "DEU", expectedError: "2-letter ISO code"},
	}

	service := NewTaxService(new(mocks.MockTaxRateRepository))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.ValidateTaxID(tt.taxID, tt.country)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				var ve *domain.ValidationError
				assert.ErrorAs(t, err, &ve)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid)
			if tt.wantValid {
				assert.Equal(t, tt.wantFormatted, result.Formatted)
			}
		})
	}
}

func TestTaxService_UpsertTaxRate(t *testing.T) {
	repo := new(mocks.MockTaxRateRepository)
	repo.On("Upsert", mock.AnythingOfType("*domain.TaxRate")).Return(nil)

	service := NewTaxService(repo)

	rate, err := service.UpsertTaxRate(context.Background(), &domain.TaxRate{
		WorkspaceID: TestWorkspaceID,
		Country:     "us",
		State:       "ca",
		Rate:        0.0725,
	})
	assert.NoError(t, err)
	assert.Equal(t, "US", rate.Country)
	assert.Equal(t, "CA", rate.State)

	_, err = service.UpsertTaxRate(context.Background(), &domain.TaxRate{Country: "US", Rate: 1.5})
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)

	repo.AssertExpectations(t)
}
