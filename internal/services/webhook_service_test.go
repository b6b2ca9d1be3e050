package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"checkout-service/internal/domain"
	"checkout-service/internal/mocks"

	"github.com/stretchr/testify/assert"
)

const testWebhookSecret = "whsec_test"

func signPayload(payload []byte) string {
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func webhookBody(eventID, eventType, orderRef string, data string) []byte {
	return []byte(fmt.Sprintf(`{"eventId":%q,"type":%q,"orderReference":%q,"data":%s}`, eventID, eventType, orderRef, data))
}

func TestWebhookService_HandleEvent(t *testing.T) {
	orderRef := "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"

	tests := []struct {
		name          string
		body          []byte
		signature     func([]byte) string
		setupMocks    func(*mocks.MockOrderRepository)
		expectedError error
	}{
		{
			name: "payment succeeded applies completion",
			body: webhookBody("evt_1", "payment.succeeded", orderRef, `{"paymentRef":"ch_9"}`),
			setupMocks: func(repo *mocks.MockOrderRepository) {
				repo.On("ApplyPaymentSucceeded", "evt_1", orderRef, "ch_9").Return(nil)
			},
		},
		{
			name: "payment failed records decline reason",
			body: webhookBody("evt_2", "payment.failed", orderRef, `{"declineReason":"card_expired"}`),
			setupMocks: func(repo *mocks.MockOrderRepository) {
				repo.On("ApplyPaymentFailed", "evt_2", orderRef, "card_expired").Return(nil)
			},
		},
		{
			name: "refund applies to completed order",
			body: webhookBody("evt_3", "charge.refunded", orderRef, `{"amount":2200}`),
			setupMocks: func(repo *mocks.MockOrderRepository) {
				repo.On("ApplyRefund", "evt_3", orderRef, int64(2200), false).Return(nil)
			},
		},
		{
			name: "partial refund applies partial status",
			body: webhookBody("evt_4", "charge.partially_refunded", orderRef, `{"amount":500}`),
			setupMocks: func(repo *mocks.MockOrderRepository) {
				repo.On("ApplyRefund", "evt_4", orderRef, int64(500), true).Return(nil)
			},
		},
		{
			name: "duplicate event id is acknowledged as a no-op",
			body: webhookBody("evt_1", "payment.succeeded", orderRef, `{"paymentRef":"ch_9"}`),
			setupMocks: func(repo *mocks.MockOrderRepository) {
				repo.On("ApplyPaymentSucceeded", "evt_1", orderRef, "ch_9").Return(domain.ErrEventAlreadyProcessed)
			},
		},
		{
			name:       "unrecognized event type is acknowledged",
			body:       webhookBody("evt_5", "dispute.opened", orderRef, `{}`),
			setupMocks: func(repo *mocks.MockOrderRepository) {},
		},
		{
			name:          "tampered payload rejected",
			body:          webhookBody("evt_6", "payment.succeeded", orderRef, `{"paymentRef":"ch_9"}`),
			signature:     func([]byte) string { return signPayload([]byte("something else")) },
			setupMocks:    func(repo *mocks.MockOrderRepository) {},
			expectedError: domain.ErrBadSignature,
		},
		{
			name:          "garbage signature rejected",
			body:          webhookBody("evt_7", "payment.succeeded", orderRef, `{}`),
			signature:     func([]byte) string { return "not-hex" },
			setupMocks:    func(repo *mocks.MockOrderRepository) {},
			expectedError: domain.ErrBadSignature,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockOrderRepository)
			tt.setupMocks(repo)

			service := NewWebhookService(repo, testWebhookSecret)

			signature := signPayload(tt.body)
			if tt.signature != nil {
				signature = tt.signature(tt.body)
			}

			err := service.HandleEvent(context.Background(), tt.body, signature)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestWebhookService_HandleEvent_MalformedPayload(t *testing.T) {
	service := NewWebhookService(new(mocks.MockOrderRepository), testWebhookSecret)

	body := []byte(`{"eventId":`)
	err := service.HandleEvent(context.Background(), body, signPayload(body))
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)

	body = webhookBody("", "payment.succeeded", "", `{}`)
	err = service.HandleEvent(context.Background(), body, signPayload(body))
	assert.ErrorAs(t, err, &ve)
}

func TestWebhookService_HandleEvent_RefundOfIncompleteOrder(t *testing.T) {
	repo := new(mocks.MockOrderRepository)
	repo.On("ApplyRefund", "evt_8", "ref-1", int64(100), false).
		Return(domain.NewConflict("cannot refund order ref-1 in status PENDING"))

	service := NewWebhookService(repo, testWebhookSecret)

	body := webhookBody("evt_8", "charge.refunded", "ref-1", `{"amount":100}`)
	err := service.HandleEvent(context.Background(), body, signPayload(body))

	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)
	repo.AssertExpectations(t)
}

func TestWebhookService_VerifySignature(t *testing.T) {
	service := NewWebhookService(new(mocks.MockOrderRepository), testWebhookSecret)

	payload := []byte(`{"eventId":"evt_1"}`)
	assert.True(t, service.VerifySignature(payload, signPayload(payload)))
	assert.False(t, service.VerifySignature(payload, signPayload([]byte("other"))))
	assert.False(t, service.VerifySignature(payload, ""))
}
