package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"pending to processing", StatusPending, StatusProcessing, true},
		{"pending to completed", StatusPending, StatusCompleted, true},
		{"pending to failed", StatusPending, StatusFailed, true},
		{"pending to canceled", StatusPending, StatusCanceled, true},
		{"processing to completed", StatusProcessing, StatusCompleted, true},
		{"processing to failed", StatusProcessing, StatusFailed, true},
		{"processing to canceled", StatusProcessing, StatusCanceled, true},
		{"completed to refunded", StatusCompleted, StatusRefunded, true},
		{"completed to partially refunded", StatusCompleted, StatusPartiallyRefunded, true},
		{"completed to pending rejected", StatusCompleted, StatusPending, false},
		{"completed to canceled rejected", StatusCompleted, StatusCanceled, false},
		{"failed is terminal", StatusFailed, StatusPending, false},
		{"refunded is terminal", StatusRefunded, StatusCompleted, false},
		{"canceled is terminal", StatusCanceled, StatusProcessing, false},
		{"no self loop", StatusPending, StatusPending, false},
		{"pending to refunded rejected", StatusPending, StatusRefunded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestCartSubtotal(t *testing.T) {
	cart := Cart{
		Items: []CartItem{
			{Quantity: 2, UnitPrice: 1000},
			{Quantity: 1, UnitPrice: 350},
			{Quantity: 3, UnitPrice: 0},
		},
	}
	assert.Equal(t, int64(2350), cart.Subtotal())

	empty := Cart{}
	assert.Equal(t, int64(0), empty.Subtotal())
}

func TestPriceValidate(t *testing.T) {
	tests := []struct {
		name    string
		price   Price
		wantErr string
	}{
		{
			name:  "valid one-time",
			price: Price{Type: PriceTypeOneTime, Amount: 1000, Currency: "USD"},
		},
		{
			name:  "valid recurring",
			price: Price{Type: PriceTypeRecurring, Amount: 500, Currency: "EUR", Interval: "month", IntervalCount: 1},
		},
		{
			name:  "valid payment plan",
			price: Price{Type: PriceTypePaymentPlan, Amount: 9000, Currency: "USD", Installments: 3},
		},
		{
			name:    "negative amount",
			price:   Price{Type: PriceTypeOneTime, Amount: -1, Currency: "USD"},
			wantErr: "amount must be >= 0",
		},
		{
			name:    "interval on one-time",
			price:   Price{Type: PriceTypeOneTime, Amount: 1000, Currency: "USD", Interval: "month"},
			wantErr: "interval fields are not allowed",
		},
		{
			name:    "recurring without interval",
			price:   Price{Type: PriceTypeRecurring, Amount: 1000, Currency: "USD", IntervalCount: 1},
			wantErr: "interval is required",
		},
		{
			name:    "recurring with zero interval count",
			price:   Price{Type: PriceTypeRecurring, Amount: 1000, Currency: "USD", Interval: "month"},
			wantErr: "intervalCount must be >= 1",
		},
		{
			name:    "payment plan single installment",
			price:   Price{Type: PriceTypePaymentPlan, Amount: 1000, Currency: "USD", Installments: 1},
			wantErr: "installments must be >= 2",
		},
		{
			name:    "bad currency",
			price:   Price{Type: PriceTypeOneTime, Amount: 1000, Currency: "US"},
			wantErr: "ISO 4217",
		},
		{
			name:    "unknown type",
			price:   Price{Type: "WEEKLY", Amount: 1000, Currency: "USD"},
			wantErr: "unknown price type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.price.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				var ve *ValidationError
				assert.ErrorAs(t, err, &ve)
			}
		})
	}
}
