package mysql

import (
	"errors"
	"log"

	"checkout-service/internal/domain"
	"checkout-service/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type taxRepo struct {
	db *gorm.DB
}

func NewTaxRateRepository(db *gorm.DB) repository.TaxRateRepository {
	return &taxRepo{db: db}
}

func (r *taxRepo) Upsert(rate *domain.TaxRate) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "workspace_id"}, {Name: "country"}, {Name: "state"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate", "classification"}),
	}).Create(rate).Error
	if err != nil {
		log.Printf("tax: upsert rate %s/%s: %v", rate.Country, rate.State, err)
	}
	return err
}

func (r *taxRepo) FindByWorkspace(workspaceID uint64) ([]domain.TaxRate, error) {
	var out []domain.TaxRate
	if err := r.db.Where("workspace_id = ?", workspaceID).
		Order("country ASC, state ASC").Find(&out).Error; err != nil {
		log.Printf("tax: find rates for workspace %d: %v", workspaceID, err)
		return nil, err
	}
	return out, nil
}

// FindByJurisdiction prefers the state-level row, then the country-level row
// (state = ''). No row means a zero-tax jurisdiction.
func (r *taxRepo) FindByJurisdiction(workspaceID uint64, country, state string) (*domain.TaxRate, error) {
	if state != "" {
		rate, err := r.findOne(workspaceID, country, state)
		if err != nil || rate != nil {
			return rate, err
		}
	}
	return r.findOne(workspaceID, country, "")
}

func (r *taxRepo) findOne(workspaceID uint64, country, state string) (*domain.TaxRate, error) {
	var rate domain.TaxRate
	err := r.db.Where("workspace_id = ? AND country = ? AND state = ?", workspaceID, country, state).
		First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("tax: find rate %d/%s/%s: %v", workspaceID, country, state, err)
		return nil, err
	}
	return &rate, nil
}
