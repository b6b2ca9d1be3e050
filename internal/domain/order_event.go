package domain

import "time"

type OrderCreatedEvent struct {
	OrderID    uint64      `json:"orderId"`
	Reference  string      `json:"reference"`
	CartID     string      `json:"cartId"`
	Email      string      `json:"email"`
	Status     OrderStatus `json:"status"`
	GrandTotal int64       `json:"grandTotal"`
	Currency   string      `json:"currency"`
	CreatedAt  time.Time   `json:"createdAt"`
}

type OrderStatusChangedEvent struct {
	OrderID    uint64      `json:"orderId"`
	Reference  string      `json:"reference"`
	FromStatus OrderStatus `json:"fromStatus"`
	ToStatus   OrderStatus `json:"toStatus"`
	Actor      string      `json:"actor,omitempty"`
	ChangedAt  time.Time   `json:"changedAt"`
}
