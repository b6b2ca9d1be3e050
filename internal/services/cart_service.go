package services

import (
	"context"

	"checkout-service/internal/domain"
	"checkout-service/internal/repository"

	"github.com/google/uuid"
)

type CartService struct {
	repo    repository.CartRepository
	catalog repository.CatalogRepository
}

func NewCartService(repo repository.CartRepository, catalog repository.CatalogRepository) *CartService {
	return &CartService{repo: repo, catalog: catalog}
}

func (s *CartService) CreateCart(ctx context.Context, workspaceID uint64) (*domain.Cart, error) {
	cart := &domain.Cart{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		Status:      domain.CartStatusOpen,
	}
	if err := s.repo.SaveCart(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	cart, err := s.repo.FindByID(cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, domain.NewNotFound("cart")
	}
	return cart, nil
}

// AddToCart snapshots the price amount and the product's taxability at add
// time; later catalog changes never alter an open cart.
func (s *CartService) AddToCart(ctx context.Context, cartID string, priceID uint64, quantity int64) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, domain.NewValidation("quantity must be >= 1, got %d", quantity)
	}
	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart.Status != domain.CartStatusOpen {
		return nil, domain.NewConflict("cart %s is already consumed", cartID)
	}

	price, err := s.catalog.FindPriceByID(priceID)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, domain.NewNotFound("price")
	}
	product, err := s.catalog.FindProductByID(price.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFound("product")
	}
	if product.Status != domain.ProductStatusActive {
		return nil, domain.NewConflict("product %d is disabled", product.ID)
	}

	item := &domain.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		PriceID:   price.ID,
		Quantity:  quantity,
		UnitPrice: price.Amount,
		Currency:  price.Currency,
		Taxable:   product.Taxable,
	}
	if err := s.repo.SaveItem(item); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, cart.ID)
}

// UpdateCartItem sets the quantity; zero deletes the item. The returned cart
// carries the re-derived subtotal.
func (s *CartService) UpdateCartItem(ctx context.Context, itemID uint64, quantity int64) (*domain.Cart, error) {
	if quantity < 0 {
		return nil, domain.NewValidation("quantity must be >= 0, got %d", quantity)
	}
	item, err := s.mutableItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if quantity == 0 {
		if _, err := s.repo.DeleteItem(itemID); err != nil {
			return nil, err
		}
	} else if err := s.repo.UpdateItemQuantity(itemID, quantity); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, item.CartID)
}

// RemoveFromCart deletes unconditionally; a second call for the same item
// fails with NotFound.
func (s *CartService) RemoveFromCart(ctx context.Context, itemID uint64) (*domain.Cart, error) {
	item, err := s.mutableItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	deleted, err := s.repo.DeleteItem(itemID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, domain.NewNotFound("cart item")
	}
	return s.GetCart(ctx, item.CartID)
}

// mutableItem loads the item and rejects mutation of a consumed cart.
func (s *CartService) mutableItem(ctx context.Context, itemID uint64) (*domain.CartItem, error) {
	item, err := s.repo.FindItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NewNotFound("cart item")
	}
	cart, err := s.repo.FindByID(item.CartID)
	if err != nil {
		return nil, err
	}
	if cart != nil && cart.Status != domain.CartStatusOpen {
		return nil, domain.NewConflict("cart %s is already consumed", item.CartID)
	}
	return item, nil
}
