package services

import (
	"time"

	"checkout-service/internal/domain"
)

const (
	TestWorkspaceID = uint64(1)
	TestCartID      = "11111111-2222-3333-4444-555555555555"
	TestOrderID     = uint64(1)
	TestProductID   = uint64(1)
	TestPriceID     = uint64(1)
	TestUnitPrice   = int64(1000)
	TestEmail       = "buyer@example.com"
)

func CreateTestProduct(id uint64, taxable bool) *domain.Product {
	return &domain.Product{
		ID:          id,
		WorkspaceID: TestWorkspaceID,
		Name:        "Test Product",
		Type:        domain.ProductTypeDigital,
		Status:      domain.ProductStatusActive,
		Taxable:     taxable,
		CreatedAt:   time.Now(),
	}
}

func CreateTestPrice(id, productID uint64, amount int64) *domain.Price {
	return &domain.Price{
		ID:        id,
		ProductID: productID,
		Type:      domain.PriceTypeOneTime,
		Amount:    amount,
		Currency:  "USD",
		CreatedAt: time.Now(),
	}
}

func CreateTestCart(id string, items ...domain.CartItem) *domain.Cart {
	return &domain.Cart{
		ID:          id,
		WorkspaceID: TestWorkspaceID,
		Status:      domain.CartStatusOpen,
		Items:       items,
		CreatedAt:   time.Now(),
	}
}

func CreateTestCartItem(id uint64, quantity, unitPrice int64, taxable bool) domain.CartItem {
	return domain.CartItem{
		ID:        id,
		CartID:    TestCartID,
		ProductID: TestProductID,
		PriceID:   TestPriceID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Currency:  "USD",
		Taxable:   taxable,
	}
}

func CreateTestOrder(id uint64, status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:          id,
		Reference:   "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee",
		WorkspaceID: TestWorkspaceID,
		CartID:      TestCartID,
		Email:       TestEmail,
		Status:      status,
		Subtotal:    2000,
		TaxTotal:    200,
		GrandTotal:  2200,
		Currency:    "USD",
		CreatedAt:   time.Now(),
	}
}

func CreateTestTaxRate(country, state string, rate float64) *domain.TaxRate {
	return &domain.TaxRate{
		ID:          1,
		WorkspaceID: TestWorkspaceID,
		Country:     country,
		State:       state,
		Rate:        rate,
	}
}
