package repository

import (
	"checkout-service/internal/domain"
)

type CatalogRepository interface {
	SaveProduct(product *domain.Product) error
	FindProductByID(id uint64) (*domain.Product, error)
	UpdateProductStatus(id uint64, status domain.ProductStatus) error
	SavePrice(price *domain.Price) error
	// SaveDefaultPrice clears the previous default for the product and
	// creates the new price inside one transaction.
	SaveDefaultPrice(price *domain.Price) error
	FindPriceByID(id uint64) (*domain.Price, error)
	FindPricesByProductID(productID uint64) ([]domain.Price, error)
}
