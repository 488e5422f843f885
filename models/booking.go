package models

import "time"

// Booking payment lifecycle. A booking only blocks its room while
// IsBooked is true and PaymentStatus is StatusPaid.
const (
	StatusPending = "pending"
	StatusPaid    = "Paid"
)

type Booking struct {
	BookingID      string    `bson:"bookingid" json:"bookingid"`
	UserID         string    `bson:"userid" json:"userid"`
	RoomID         string    `bson:"roomid" json:"roomid"`
	FirstName      string    `bson:"firstname" json:"firstname"`
	LastName       string    `bson:"lastname" json:"lastname"`
	PhoneNo        string    `bson:"phone_no" json:"phone_no"`
	Email          string    `bson:"email" json:"email"`
	StartDate      time.Time `bson:"start_date" json:"start_date"`
	EndDate        time.Time `bson:"end_date" json:"end_date"`
	TotalAmount    float64   `bson:"tot_amt" json:"tot_amt"`
	IsBooked       bool      `bson:"isBooked" json:"isBooked"`
	PaymentOrderID string    `bson:"paymentOrderId,omitempty" json:"paymentOrderId,omitempty"`
	PaymentID      string    `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	PaymentStatus  string    `bson:"paymentStatus" json:"paymentStatus"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// Authoritative reports whether this booking blocks its room.
func (b Booking) Authoritative() bool {
	return b.IsBooked && b.PaymentStatus == StatusPaid
}
