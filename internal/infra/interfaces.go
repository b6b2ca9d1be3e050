package infra

import "context"

type PaymentGateway interface {
	Charge(ctx context.Context, paymentMethodID string, amount int64, currency string) (*ChargeResult, error)
}

var _ PaymentGateway = (*PaymentClient)(nil)
