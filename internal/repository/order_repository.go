package repository

import (
	"checkout-service/internal/domain"
)

type OrderRepository interface {
	// CreateFromCart persists the order with its items and marks the source
	// cart consumed in one transaction. A cart that is already consumed (or
	// was consumed concurrently) yields a ConflictError and no order row.
	CreateFromCart(order *domain.Order, cartID string) error
	FindByID(id uint64) (*domain.Order, error)
	FindByReference(reference string) (*domain.Order, error)
	FindByWorkspace(workspaceID uint64) ([]domain.Order, error)
	// RecordChargeResult applies the synchronous gateway outcome, guarded by
	// the status machine.
	RecordChargeResult(orderID uint64, to domain.OrderStatus, paymentRef, declineReason string) error
	// TransitionStatus applies an administrative override and writes the
	// audit row in the same transaction. Returns the updated order.
	TransitionStatus(orderID uint64, to domain.OrderStatus, actor string) (*domain.Order, error)
	// ApplyPaymentSucceeded/Failed/Refund are webhook reconciliations: each
	// inserts the event id idempotency record and applies the transition in
	// one transaction. A duplicate event id yields ErrEventAlreadyProcessed.
	ApplyPaymentSucceeded(eventID, orderReference, paymentRef string) error
	ApplyPaymentFailed(eventID, orderReference, declineReason string) error
	ApplyRefund(eventID, orderReference string, amount int64, partial bool) error
	AggregateCompletedByDay(workspaceID uint64) ([]domain.AnalyticsBucket, error)
}
