package http

import "checkout-service/internal/domain"

type AddressDTO struct {
	Line1      string `json:"line1"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

func (a *AddressDTO) toDomain() *domain.Address {
	if a == nil {
		return nil
	}
	return &domain.Address{
		Line1:      a.Line1,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

type CreateProductRequest struct {
	WorkspaceID uint64 `json:"workspaceId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Type        string `json:"type" binding:"required"`
	Taxable     *bool  `json:"taxable"`
}

type CreatePriceRequest struct {
	ProductID     uint64 `json:"productId" binding:"required"`
	Type          string `json:"type" binding:"required"`
	Amount        int64  `json:"amount" binding:"min=0"`
	Currency      string `json:"currency" binding:"required,len=3"`
	Interval      string `json:"interval"`
	IntervalCount int    `json:"intervalCount"`
	TrialDays     int    `json:"trialDays"`
	Installments  int    `json:"installments"`
	IsDefault     bool   `json:"isDefault"`
}

type CreateCartRequest struct {
	WorkspaceID uint64 `json:"workspaceId" binding:"required"`
}

type AddToCartRequest struct {
	PriceID  uint64 `json:"priceId" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity *int64 `json:"quantity" binding:"required,min=0"`
}

type CartResponse struct {
	Cart     *domain.Cart `json:"cart"`
	Subtotal int64        `json:"subtotal"`
}

type CheckoutRequestDTO struct {
	CartID          string      `json:"cartId" binding:"required"`
	Email           string      `json:"email" binding:"required,email"`
	Name            string      `json:"name"`
	BillingAddress  *AddressDTO `json:"billingAddress"`
	ShippingAddress *AddressDTO `json:"shippingAddress"`
	PaymentMethodID string      `json:"paymentMethodId"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Actor  string `json:"actor" binding:"required"`
}

type TaxItemDTO struct {
	Amount   int64 `json:"amount" binding:"min=0"`
	Quantity int64 `json:"quantity" binding:"required,min=1"`
	Taxable  bool  `json:"taxable"`
}

type CalculateTaxRequest struct {
	WorkspaceID     uint64       `json:"workspaceId" binding:"required"`
	Items           []TaxItemDTO `json:"items" binding:"required,dive"`
	ShippingAddress *AddressDTO  `json:"shippingAddress"`
	BillingAddress  *AddressDTO  `json:"billingAddress"`
}

type ValidateTaxIDRequest struct {
	TaxID   string `json:"taxId" binding:"required"`
	Country string `json:"country" binding:"required,len=2"`
}

type UpsertTaxRateRequest struct {
	Country        string  `json:"country" binding:"required,len=2"`
	State          string  `json:"state"`
	Rate           float64 `json:"rate" binding:"min=0,max=1"`
	Classification string  `json:"classification"`
}
