package repository

import (
	"checkout-service/internal/domain"
)

type CartRepository interface {
	SaveCart(cart *domain.Cart) error
	// FindByID preloads items; returns (nil, nil) when the cart is absent.
	FindByID(id string) (*domain.Cart, error)
	SaveItem(item *domain.CartItem) error
	FindItemByID(id uint64) (*domain.CartItem, error)
	UpdateItemQuantity(id uint64, quantity int64) error
	// DeleteItem reports whether a row was actually removed.
	DeleteItem(id uint64) (bool, error)
}
