package domain

import "time"

type ProductType string

const (
	ProductTypeDigital      ProductType = "digital"
	ProductTypePhysical     ProductType = "physical"
	ProductTypeSubscription ProductType = "subscription"
	ProductTypeService      ProductType = "service"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusDisabled ProductStatus = "disabled"
)

// Product is a sellable item. Type is immutable after creation and products
// referenced by orders are soft-disabled via Status, never deleted.
type Product struct {
	ID          uint64        `json:"id" gorm:"primaryKey;autoIncrement"`
	WorkspaceID uint64        `json:"workspaceId" gorm:"not null;index"`
	Name        string        `json:"name" gorm:"size:255;not null"`
	Slug        string        `json:"slug" gorm:"size:255;index"`
	Type        ProductType   `json:"type" gorm:"type:enum('digital','physical','subscription','service');not null"`
	Status      ProductStatus `json:"status" gorm:"type:enum('active','disabled');default:'active'"`
	Taxable     bool          `json:"taxable" gorm:"not null;default:true"`
	CreatedAt   time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (t ProductType) Valid() bool {
	switch t {
	case ProductTypeDigital, ProductTypePhysical, ProductTypeSubscription, ProductTypeService:
		return true
	}
	return false
}

type PriceType string

const (
	PriceTypeOneTime     PriceType = "ONE_TIME"
	PriceTypeRecurring   PriceType = "RECURRING"
	PriceTypePaymentPlan PriceType = "PAYMENT_PLAN"
)

// Price is a purchasable variant of a product. Amount is in minor currency
// units. At most one price per product carries IsDefault.
type Price struct {
	ID            uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID     uint64    `json:"productId" gorm:"not null;index"`
	Type          PriceType `json:"type" gorm:"type:enum('ONE_TIME','RECURRING','PAYMENT_PLAN');not null"`
	Amount        int64     `json:"amount" gorm:"not null"`
	Currency      string    `json:"currency" gorm:"size:3;not null"`
	Interval      string    `json:"interval,omitempty" gorm:"size:16"`
	IntervalCount int       `json:"intervalCount,omitempty"`
	TrialDays     int       `json:"trialDays,omitempty"`
	Installments  int       `json:"installments,omitempty"`
	IsDefault     bool      `json:"isDefault" gorm:"not null;default:false;index"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// Validate enforces the per-type field rules.
func (p *Price) Validate() error {
	if p.Amount < 0 {
		return NewValidation("price amount must be >= 0, got %d", p.Amount)
	}
	if len(p.Currency) != 3 {
		return NewValidation("currency must be a 3-letter ISO 4217 code, got %q", p.Currency)
	}
	switch p.Type {
	case PriceTypeOneTime:
		if p.Interval != "" || p.IntervalCount != 0 {
			return NewValidation("interval fields are not allowed for ONE_TIME prices")
		}
		if p.Installments != 0 {
			return NewValidation("installments are not allowed for ONE_TIME prices")
		}
	case PriceTypeRecurring:
		if p.Interval == "" {
			return NewValidation("interval is required for RECURRING prices")
		}
		if p.IntervalCount < 1 {
			return NewValidation("intervalCount must be >= 1 for RECURRING prices, got %d", p.IntervalCount)
		}
		if p.Installments != 0 {
			return NewValidation("installments are not allowed for RECURRING prices")
		}
	case PriceTypePaymentPlan:
		if p.Installments < 2 {
			return NewValidation("installments must be >= 2 for PAYMENT_PLAN prices, got %d", p.Installments)
		}
		if p.Interval != "" || p.IntervalCount != 0 {
			return NewValidation("interval fields are not allowed for PAYMENT_PLAN prices")
		}
	default:
		return NewValidation("unknown price type %q", p.Type)
	}
	return nil
}
