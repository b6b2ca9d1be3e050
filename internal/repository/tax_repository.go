package repository

import (
	"checkout-service/internal/domain"
)

type TaxRateRepository interface {
	Upsert(rate *domain.TaxRate) error
	FindByWorkspace(workspaceID uint64) ([]domain.TaxRate, error)
	// FindByJurisdiction resolves (country, state) with the state-level row
	// taking precedence over the country-level row. Returns (nil, nil) when
	// no rate is configured, meaning a zero-tax jurisdiction.
	FindByJurisdiction(workspaceID uint64, country, state string) (*domain.TaxRate, error)
}
