package domain

import "time"

type OrderStatus string

const (
	StatusPending           OrderStatus = "PENDING"
	StatusProcessing        OrderStatus = "PROCESSING"
	StatusCompleted         OrderStatus = "COMPLETED"
	StatusFailed            OrderStatus = "FAILED"
	StatusRefunded          OrderStatus = "REFUNDED"
	StatusPartiallyRefunded OrderStatus = "PARTIALLY_REFUNDED"
	StatusCanceled          OrderStatus = "CANCELED"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCompleted, StatusFailed, StatusCanceled},
	StatusProcessing: {StatusCompleted, StatusFailed, StatusCanceled},
	StatusCompleted:  {StatusRefunded, StatusPartiallyRefunded},
}

// CanTransitionTo reports whether the status machine permits moving from s to
// next. Terminal statuses permit nothing; self-loops are not permitted.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed,
		StatusRefunded, StatusPartiallyRefunded, StatusCanceled:
		return true
	}
	return false
}

type Address struct {
	Line1      string `json:"line1,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Order is the immutable record of a purchase attempt. Rows are never
// deleted; after creation only status and payment fields change, and only
// through the state machine.
type Order struct {
	ID             uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Reference      string      `json:"reference" gorm:"size:36;uniqueIndex;not null"`
	WorkspaceID    uint64      `json:"workspaceId" gorm:"not null;index"`
	CartID         string      `json:"cartId" gorm:"size:36;uniqueIndex;not null"`
	Email          string      `json:"email" gorm:"size:255;not null"`
	Name           string      `json:"name" gorm:"size:255"`
	Status         OrderStatus `json:"status" gorm:"size:32;not null;index"`
	Subtotal       int64       `json:"subtotal" gorm:"not null"`
	TaxTotal       int64       `json:"taxTotal" gorm:"not null"`
	GrandTotal     int64       `json:"grandTotal" gorm:"not null"`
	Currency       string      `json:"currency" gorm:"size:3;not null"`
	BillingAddr    Address     `json:"billingAddress" gorm:"embedded;embeddedPrefix:billing_"`
	ShippingAddr   Address     `json:"shippingAddress" gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentRef     string      `json:"paymentRef,omitempty" gorm:"size:64;index"`
	DeclineReason  string      `json:"declineReason,omitempty" gorm:"size:255"`
	RefundedAmount int64       `json:"refundedAmount,omitempty"`
	Items          []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt      time.Time   `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt      time.Time   `json:"updatedAt" gorm:"autoUpdateTime"`
}

// OrderItem is a snapshot of one cart line at checkout time.
type OrderItem struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64    `json:"orderId" gorm:"not null;index"`
	ProductID uint64    `json:"productId" gorm:"not null"`
	PriceID   uint64    `json:"priceId" gorm:"not null"`
	Quantity  int64     `json:"quantity" gorm:"not null"`
	UnitPrice int64     `json:"unitPrice" gorm:"not null"`
	TaxAmount int64     `json:"taxAmount" gorm:"not null"`
	Currency  string    `json:"currency" gorm:"size:3;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// OrderStatusAudit records one administrative status override.
type OrderStatusAudit struct {
	ID         uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID    uint64      `json:"orderId" gorm:"not null;index"`
	Actor      string      `json:"actor" gorm:"size:255;not null"`
	FromStatus OrderStatus `json:"fromStatus" gorm:"size:32;not null"`
	ToStatus   OrderStatus `json:"toStatus" gorm:"size:32;not null"`
	CreatedAt  time.Time   `json:"createdAt" gorm:"autoCreateTime"`
}

// WebhookEvent is the idempotency record for one processed gateway event.
type WebhookEvent struct {
	EventID     string    `json:"eventId" gorm:"primaryKey;size:128"`
	EventType   string    `json:"eventType" gorm:"size:64;index"`
	ProcessedAt time.Time `json:"processedAt"`
}

// AnalyticsBucket is one day of COMPLETED-order aggregates.
type AnalyticsBucket struct {
	Day        string `json:"day"`
	Revenue    int64  `json:"revenue"`
	OrderCount int64  `json:"orderCount"`
}

type OrderAnalytics struct {
	TotalRevenue int64             `json:"totalRevenue"`
	TotalOrders  int64             `json:"totalOrders"`
	Buckets      []AnalyticsBucket `json:"buckets"`
}
