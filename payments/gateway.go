// Package payments holds the payment-gateway collaborator. The core only
// depends on the Gateway interface; the concrete client talks to a
// Razorpay-compatible REST API, with a local stub for development.
package payments

import (
	"context"
	"errors"
	"os"
	"sync"

	"unwind/utils"
)

// Order is a payment order created at the gateway. Amount is in minor
// currency units (paise).
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
}

// Refund is a refund issued against a captured payment. Amount is in minor
// currency units.
type Refund struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
}

// ErrGateway wraps any failure talking to the payment provider so callers
// can distinguish gateway trouble from their own validation errors.
var ErrGateway = errors.New("payment gateway error")

type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*Order, error)
	Refund(ctx context.Context, paymentID string) (*Refund, error)
}

// NewFromEnv returns the REST client when gateway credentials are configured
// and the local stub otherwise.
func NewFromEnv() Gateway {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		return NewStubGateway()
	}
	return NewRestGateway(keyID, keySecret)
}

// StubGateway fabricates orders and refunds locally. It remembers the amount
// per order so refunds can echo something plausible back. Safe for use from
// concurrent request handlers.
type StubGateway struct {
	mu      sync.Mutex
	amounts map[string]int64
}

func NewStubGateway() *StubGateway {
	return &StubGateway{amounts: make(map[string]int64)}
}

func (g *StubGateway) CreateOrder(_ context.Context, amountMinor int64, currency, receipt string) (*Order, error) {
	order := &Order{
		ID:       "order_" + utils.GenerateRandomString(14),
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
	}
	g.mu.Lock()
	g.amounts[order.ID] = amountMinor
	g.mu.Unlock()
	return order, nil
}

func (g *StubGateway) Refund(_ context.Context, paymentID string) (*Refund, error) {
	if paymentID == "" {
		return nil, ErrGateway
	}
	g.mu.Lock()
	amount := g.amounts[paymentID]
	g.mu.Unlock()
	return &Refund{
		ID:     "rfnd_" + utils.GenerateRandomString(14),
		Amount: amount,
	}, nil
}
