package services

import (
	"context"
	"errors"
	"log"
	"time"

	"checkout-service/internal/domain"
	"checkout-service/internal/infra"
	rabbit "checkout-service/internal/infra/rabbitmq"
	"checkout-service/internal/repository"

	"github.com/google/uuid"
)

// TaxCalculator is the slice of the tax engine the checkout pipeline needs.
type TaxCalculator interface {
	CalculateTax(ctx context.Context, workspaceID uint64, items []domain.TaxableItem, shipping, billing *domain.Address) (*domain.TaxBreakdown, error)
}

type CheckoutRequest struct {
	CartID          string
	Email           string
	Name            string
	BillingAddress  *domain.Address
	ShippingAddress *domain.Address
	PaymentMethodID string
}

type CheckoutService struct {
	orders    repository.OrderRepository
	carts     repository.CartRepository
	tax       TaxCalculator
	gateway   infra.PaymentGateway
	publisher rabbit.PublisherInterface
}

func NewCheckoutService(orders repository.OrderRepository, carts repository.CartRepository, tax TaxCalculator, gateway infra.PaymentGateway, publisher rabbit.PublisherInterface) *CheckoutService {
	return &CheckoutService{
		orders:    orders,
		carts:     carts,
		tax:       tax,
		gateway:   gateway,
		publisher: publisher,
	}
}

// CreateCheckout converts an open cart into a PENDING order, computing totals
// and consuming the cart in one transaction. When a payment method is given
// the charge is attempted synchronously; a gateway failure leaves the order
// PENDING and is returned alongside the created order.
func (s *CheckoutService) CreateCheckout(ctx context.Context, req CheckoutRequest) (*domain.Order, error) {
	if req.Email == "" {
		return nil, domain.NewValidation("email is required")
	}
	cart, err := s.carts.FindByID(req.CartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, domain.NewNotFound("cart")
	}
	if cart.Status != domain.CartStatusOpen {
		return nil, domain.NewConflict("cart %s already consumed", cart.ID)
	}
	if len(cart.Items) == 0 {
		return nil, domain.NewValidation("cart %s is empty", cart.ID)
	}

	currency := cart.Items[0].Currency
	taxables := make([]domain.TaxableItem, len(cart.Items))
	for i, item := range cart.Items {
		if item.Currency != currency {
			return nil, domain.NewValidation("cart mixes currencies %s and %s", currency, item.Currency)
		}
		taxables[i] = domain.TaxableItem{
			Amount:   item.UnitPrice,
			Quantity: item.Quantity,
			Taxable:  item.Taxable,
		}
	}

	breakdown, err := s.tax.CalculateTax(ctx, cart.WorkspaceID, taxables, req.ShippingAddress, req.BillingAddress)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		Reference:   uuid.NewString(),
		WorkspaceID: cart.WorkspaceID,
		CartID:      cart.ID,
		Email:       req.Email,
		Name:        req.Name,
		Status:      domain.StatusPending,
		TaxTotal:    breakdown.TotalTax,
		Currency:    currency,
	}
	if req.BillingAddress != nil {
		order.BillingAddr = *req.BillingAddress
	}
	if req.ShippingAddress != nil {
		order.ShippingAddr = *req.ShippingAddress
	}
	order.Items = make([]domain.OrderItem, len(cart.Items))
	for i, item := range cart.Items {
		order.Items[i] = domain.OrderItem{
			ProductID: item.ProductID,
			PriceID:   item.PriceID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			TaxAmount: breakdown.PerItemTax[i],
			Currency:  item.Currency,
		}
		order.Subtotal += item.UnitPrice * item.Quantity
	}
	order.GrandTotal = order.Subtotal + order.TaxTotal

	if err := s.orders.CreateFromCart(order, cart.ID); err != nil {
		return nil, err
	}

	go s.publishEvent(context.Background(), "order.created", domain.OrderCreatedEvent{
		OrderID:    order.ID,
		Reference:  order.Reference,
		CartID:     order.CartID,
		Email:      order.Email,
		Status:     order.Status,
		GrandTotal: order.GrandTotal,
		Currency:   order.Currency,
		CreatedAt:  order.CreatedAt,
	})

	if req.PaymentMethodID == "" {
		return order, nil
	}
	return s.chargeOrder(ctx, order, req.PaymentMethodID)
}

// chargeOrder runs the synchronous charge. A transport-level gateway error is
// surfaced to the caller with the order left PENDING; a decline moves the
// order to FAILED with the gateway's reason recorded.
func (s *CheckoutService) chargeOrder(ctx context.Context, order *domain.Order, paymentMethodID string) (*domain.Order, error) {
	result, err := s.gateway.Charge(ctx, paymentMethodID, order.GrandTotal, order.Currency)
	if err != nil {
		var gwErr *domain.GatewayError
		if !errors.As(err, &gwErr) {
			err = &domain.GatewayError{Msg: "charge failed", Err: err}
		}
		return order, err
	}

	switch result.Status {
	case infra.ChargeStatusSucceeded:
		order.Status = domain.StatusCompleted
		order.PaymentRef = result.Reference
	case infra.ChargeStatusDeclined:
		order.Status = domain.StatusFailed
		order.DeclineReason = result.DeclineReason
	default:
		order.Status = domain.StatusProcessing
		order.PaymentRef = result.Reference
	}

	if err := s.orders.RecordChargeResult(order.ID, order.Status, order.PaymentRef, order.DeclineReason); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *CheckoutService) GetOrder(ctx context.Context, id uint64) (*domain.Order, error) {
	o, err := s.orders.FindByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NewNotFound("order")
	}
	return o, nil
}

// GetOrderByReference looks an order up by its public reference, the id
// shared with the payment gateway.
func (s *CheckoutService) GetOrderByReference(ctx context.Context, reference string) (*domain.Order, error) {
	o, err := s.orders.FindByReference(reference)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NewNotFound("order")
	}
	return o, nil
}

func (s *CheckoutService) ListOrders(ctx context.Context, workspaceID uint64) ([]domain.Order, error) {
	return s.orders.FindByWorkspace(workspaceID)
}

// UpdateOrderStatus is the administrative override; the transition is
// validated against the status machine and audited with the acting identity.
func (s *CheckoutService) UpdateOrderStatus(ctx context.Context, orderID uint64, to domain.OrderStatus, actor string) (*domain.Order, error) {
	if !to.Valid() {
		return nil, domain.NewValidation("unknown order status %q", to)
	}
	if actor == "" {
		return nil, domain.NewValidation("actor is required")
	}
	current, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	from := current.Status

	updated, err := s.orders.TransitionStatus(orderID, to, actor)
	if err != nil {
		return nil, err
	}

	go s.publishEvent(context.Background(), "order.status_changed", domain.OrderStatusChangedEvent{
		OrderID:    updated.ID,
		Reference:  updated.Reference,
		FromStatus: from,
		ToStatus:   updated.Status,
		Actor:      actor,
		ChangedAt:  time.Now().UTC(),
	})
	return updated, nil
}

func (s *CheckoutService) GetOrderAnalytics(ctx context.Context, workspaceID uint64) (*domain.OrderAnalytics, error) {
	buckets, err := s.orders.AggregateCompletedByDay(workspaceID)
	if err != nil {
		return nil, err
	}
	analytics := &domain.OrderAnalytics{Buckets: buckets}
	for _, b := range buckets {
		analytics.TotalRevenue += b.Revenue
		analytics.TotalOrders += b.OrderCount
	}
	return analytics, nil
}

func (s *CheckoutService) publishEvent(ctx context.Context, routingKey string, data any) {
	if err := s.publisher.Publish(ctx, routingKey, data); err != nil {
		log.Printf("failed to publish %s event: %v", routingKey, err)
	}
}
