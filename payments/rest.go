package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

// RestGateway talks to a Razorpay-compatible orders/refunds API using basic
// auth. All amounts on the wire are in minor currency units.
type RestGateway struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

func NewRestGateway(keyID, keySecret string) *RestGateway {
	return &RestGateway{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   defaultBaseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *RestGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*Order, error) {
	payload := map[string]any{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}
	var order Order
	if err := g.post(ctx, g.baseURL+"/orders", payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (g *RestGateway) Refund(ctx context.Context, paymentID string) (*Refund, error) {
	if paymentID == "" {
		return nil, fmt.Errorf("%w: no payment reference to refund", ErrGateway)
	}
	var refund Refund
	url := fmt.Sprintf("%s/payments/%s/refund", g.baseURL, paymentID)
	if err := g.post(ctx, url, map[string]any{}, &refund); err != nil {
		return nil, err
	}
	return &refund, nil
}

func (g *RestGateway) post(ctx context.Context, url string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: unexpected status %d", ErrGateway, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}
	return nil
}
