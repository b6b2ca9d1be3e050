package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"checkout-service/internal/domain"
)

const (
	ChargeStatusSucceeded  = "succeeded"
	ChargeStatusProcessing = "processing"
	ChargeStatusDeclined   = "declined"
)

// ChargeResult is the gateway's synchronous answer. Declines arrive here as
// a status, not as a transport error.
type ChargeResult struct {
	Status        string `json:"status"`
	Reference     string `json:"reference"`
	DeclineReason string `json:"declineReason,omitempty"`
}

type PaymentClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewPaymentClient(baseURL, apiKey string, timeout time.Duration) *PaymentClient {
	return &PaymentClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *PaymentClient) Charge(ctx context.Context, paymentMethodID string, amount int64, currency string) (*ChargeResult, error) {
	payload, _ := json.Marshal(map[string]any{
		"paymentMethodId": paymentMethodID,
		"amount":          amount,
		"currency":        currency,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/charges", bytes.NewReader(payload))
	if err != nil {
		return nil, &domain.GatewayError{Msg: "build charge request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.GatewayError{Msg: "charge call failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.GatewayError{Msg: "gateway returned status " + resp.Status}
	}

	var result ChargeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &domain.GatewayError{Msg: "decode charge response", Err: err}
	}
	return &result, nil
}
