package payments

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestStubCreateOrder(t *testing.T) {
	g := NewStubGateway()

	order, err := g.CreateOrder(context.Background(), 20000, "INR", "room_booking_receipt")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if !strings.HasPrefix(order.ID, "order_") {
		t.Errorf("order id %q should carry the order_ prefix", order.ID)
	}
	if order.Amount != 20000 {
		t.Errorf("order amount = %d, want 20000", order.Amount)
	}
	if order.Currency != "INR" || order.Receipt != "room_booking_receipt" {
		t.Errorf("order echoed %q/%q", order.Currency, order.Receipt)
	}
}

func TestStubGatewayConcurrentUse(t *testing.T) {
	g := NewStubGateway()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := g.CreateOrder(context.Background(), 10000, "INR", "room_booking_receipt"); err != nil {
					t.Errorf("CreateOrder: %v", err)
					return
				}
				if _, err := g.Refund(context.Background(), "pay_abc"); err != nil {
					t.Errorf("Refund: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestStubRefundRequiresPaymentID(t *testing.T) {
	g := NewStubGateway()

	if _, err := g.Refund(context.Background(), ""); !errors.Is(err, ErrGateway) {
		t.Fatalf("Refund with empty payment id: err = %v, want ErrGateway", err)
	}

	refund, err := g.Refund(context.Background(), "pay_abc")
	if err != nil {
		t.Fatalf("Refund: %v", err)
	}
	if !strings.HasPrefix(refund.ID, "rfnd_") {
		t.Errorf("refund id %q should carry the rfnd_ prefix", refund.ID)
	}
}
