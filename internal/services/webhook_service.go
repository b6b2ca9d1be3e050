package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"

	"checkout-service/internal/domain"
	"checkout-service/internal/repository"
)

// paymentEvent is the gateway's webhook payload.
type paymentEvent struct {
	EventID        string `json:"eventId"`
	Type           string `json:"type"`
	OrderReference string `json:"orderReference"`
	Data           struct {
		PaymentRef    string `json:"paymentRef"`
		DeclineReason string `json:"declineReason"`
		Amount        int64  `json:"amount"`
	} `json:"data"`
}

// WebhookService reconciles asynchronous payment events onto orders. Each
// event id is applied at most once; the idempotency record and the status
// transition commit together.
type WebhookService struct {
	orders repository.OrderRepository
	secret []byte
}

func NewWebhookService(orders repository.OrderRepository, secret string) *WebhookService {
	return &WebhookService{orders: orders, secret: []byte(secret)}
}

// VerifySignature checks the hex HMAC-SHA256 of the raw payload.
func (s *WebhookService) VerifySignature(payload []byte, signature string) bool {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(payload)
	expected := mac.Sum(nil)
	provided, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, provided)
}

// HandleEvent verifies, parses and applies one gateway event. A replayed
// event id and an unrecognized event type are both acknowledged as success.
func (s *WebhookService) HandleEvent(ctx context.Context, rawBody []byte, signature string) error {
	if !s.VerifySignature(rawBody, signature) {
		return domain.ErrBadSignature
	}

	var event paymentEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return domain.NewValidation("malformed webhook payload: %v", err)
	}
	if event.EventID == "" || event.OrderReference == "" {
		return domain.NewValidation("webhook event requires eventId and orderReference")
	}

	var err error
	switch event.Type {
	case "payment.succeeded":
		err = s.orders.ApplyPaymentSucceeded(event.EventID, event.OrderReference, event.Data.PaymentRef)
	case "payment.failed":
		err = s.orders.ApplyPaymentFailed(event.EventID, event.OrderReference, event.Data.DeclineReason)
	case "charge.refunded":
		err = s.orders.ApplyRefund(event.EventID, event.OrderReference, event.Data.Amount, false)
	case "charge.partially_refunded":
		err = s.orders.ApplyRefund(event.EventID, event.OrderReference, event.Data.Amount, true)
	default:
		log.Printf("webhook: ignoring unrecognized event type %q (%s)", event.Type, event.EventID)
		return nil
	}

	if errors.Is(err, domain.ErrEventAlreadyProcessed) {
		log.Printf("webhook: event %s already processed, acknowledging", event.EventID)
		return nil
	}
	return err
}
