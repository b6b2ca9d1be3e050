package mysql

import (
	"errors"
	"log"

	"checkout-service/internal/domain"
	"checkout-service/internal/repository"

	"gorm.io/gorm"
)

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) SaveProduct(product *domain.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		log.Printf("catalog: save product: %v", err)
		return err
	}
	return nil
}

func (r *catalogRepo) FindProductByID(id uint64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("catalog: find product %d: %v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *catalogRepo) UpdateProductStatus(id uint64, status domain.ProductStatus) error {
	res := r.db.Model(&domain.Product{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		log.Printf("catalog: update product %d status: %v", id, res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFound("product")
	}
	return nil
}

func (r *catalogRepo) SavePrice(price *domain.Price) error {
	if err := r.db.Create(price).Error; err != nil {
		log.Printf("catalog: save price: %v", err)
		return err
	}
	return nil
}

// SaveDefaultPrice clears the previous default and creates the new price in
// one transaction, so readers never observe zero or two defaults.
func (r *catalogRepo) SaveDefaultPrice(price *domain.Price) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Price{}).
			Where("product_id = ? AND is_default = ?", price.ProductID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		price.IsDefault = true
		return tx.Create(price).Error
	})
}

func (r *catalogRepo) FindPriceByID(id uint64) (*domain.Price, error) {
	var p domain.Price
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("catalog: find price %d: %v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *catalogRepo) FindPricesByProductID(productID uint64) ([]domain.Price, error) {
	var out []domain.Price
	if err := r.db.Where("product_id = ?", productID).
		Order("created_at ASC").Find(&out).Error; err != nil {
		log.Printf("catalog: find prices for product %d: %v", productID, err)
		return nil, err
	}
	return out, nil
}
