package services

import (
	"context"

	"checkout-service/internal/domain"
	"checkout-service/internal/repository"
)

type CatalogService struct {
	repo repository.CatalogRepository
}

func NewCatalogService(repo repository.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product.Name == "" {
		return nil, domain.NewValidation("product name is required")
	}
	if !product.Type.Valid() {
		return nil, domain.NewValidation("unknown product type %q", product.Type)
	}
	if product.Status == "" {
		product.Status = domain.ProductStatusActive
	}
	if err := s.repo.SaveProduct(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint64) (*domain.Product, error) {
	p, err := s.repo.FindProductByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound("product")
	}
	return p, nil
}

// DisableProduct soft-disables. Products referenced by orders are never
// deleted.
func (s *CatalogService) DisableProduct(ctx context.Context, id uint64) error {
	return s.repo.UpdateProductStatus(id, domain.ProductStatusDisabled)
}

// CreatePrice validates per-type fields and, when the new price is the
// default, switches the default atomically.
func (s *CatalogService) CreatePrice(ctx context.Context, price *domain.Price) (*domain.Price, error) {
	if err := price.Validate(); err != nil {
		return nil, err
	}
	product, err := s.repo.FindProductByID(price.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFound("product")
	}

	if price.IsDefault {
		err = s.repo.SaveDefaultPrice(price)
	} else {
		err = s.repo.SavePrice(price)
	}
	if err != nil {
		return nil, err
	}
	return price, nil
}

func (s *CatalogService) GetPrice(ctx context.Context, id uint64) (*domain.Price, error) {
	p, err := s.repo.FindPriceByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound("price")
	}
	return p, nil
}

func (s *CatalogService) ListPrices(ctx context.Context, productID uint64) ([]domain.Price, error) {
	product, err := s.repo.FindProductByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFound("product")
	}
	return s.repo.FindPricesByProductID(productID)
}
