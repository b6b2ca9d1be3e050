package domain

import "time"

type CartStatus string

const (
	CartStatusOpen     CartStatus = "open"
	CartStatusConsumed CartStatus = "consumed"
)

// Cart holds pre-purchase line items for one session. A cart is marked
// consumed inside the checkout transaction and can never be checked out twice.
type Cart struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`
	WorkspaceID uint64     `json:"workspaceId" gorm:"not null;index"`
	Status      CartStatus `json:"status" gorm:"type:enum('open','consumed');default:'open'"`
	Items       []CartItem `json:"items" gorm:"foreignKey:CartID"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Subtotal is derived from the frozen unit-price snapshots on every call,
// never stored.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.UnitPrice * item.Quantity
	}
	return total
}

// CartItem freezes the unit price and taxability at add-to-cart time so later
// catalog changes do not retroactively alter an open cart.
type CartItem struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	CartID    string    `json:"cartId" gorm:"size:36;not null;index"`
	ProductID uint64    `json:"productId" gorm:"not null"`
	PriceID   uint64    `json:"priceId" gorm:"not null"`
	Quantity  int64     `json:"quantity" gorm:"not null"`
	UnitPrice int64     `json:"unitPrice" gorm:"not null"`
	Currency  string    `json:"currency" gorm:"size:3;not null"`
	Taxable   bool      `json:"taxable" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
