package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"unwind/rdx"
)

// Channel carries booking lifecycle events for any interested subscriber
// (currently the live admin feed).
const Channel = "booking-events"

const (
	EventBookingCreated   = "booking.created"
	EventBookingUpdated   = "booking.updated"
	EventPaymentConfirmed = "payment.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

type Event struct {
	Name      string  `json:"name"`
	BookingID string  `json:"bookingId"`
	RoomID    string  `json:"roomId,omitempty"`
	UserID    string  `json:"userId,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
	At        int64   `json:"at"`
}

// Emit publishes a booking event to Redis. Failures are logged, never fatal:
// event delivery is best-effort and must not affect the request outcome.
func Emit(ctx context.Context, name string, evt Event) {
	evt.Name = name
	evt.At = time.Now().Unix()

	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("mq: failed to marshal event %s: %v", name, err)
		return
	}
	if err := rdx.Conn.Publish(ctx, Channel, data).Err(); err != nil {
		log.Printf("mq: failed to publish event %s: %v", name, err)
	}
}
