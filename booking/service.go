package booking

import (
	"context"
	"math"
	"time"

	"unwind/models"
	"unwind/payments"
	"unwind/utils"
)

const currency = "INR"

// Store is the persistence surface the booking core needs. Lookups return
// (nil, nil) when no document matches; consistency under concurrent requests
// relies on the store's per-document atomicity, not on in-process locking.
type Store interface {
	Create(ctx context.Context, b models.Booking) error

	// Authoritative returns room-blocking bookings (isBooked and Paid)
	// whose inclusive date range intersects [start, end]. An empty roomID
	// searches across all rooms.
	Authoritative(ctx context.Context, roomID string, start, end time.Time) ([]models.Booking, error)

	// FindPending returns the caller's pending booking for a room, if any.
	FindPending(ctx context.Context, userID, roomID string) (*models.Booking, error)

	// FindOwned returns a booking by id scoped to its owner.
	FindOwned(ctx context.Context, bookingID, userID string) (*models.Booking, error)

	// FindPaidByUser returns the user's authoritative bookings, optionally
	// narrowed to a guest email.
	FindPaidByUser(ctx context.Context, userID, email string) ([]models.Booking, error)

	// OverwritePending replaces a pending booking's guest details, dates,
	// amount, and order reference in a single update.
	OverwritePending(ctx context.Context, bookingID string, upd PendingUpdate) (*models.Booking, error)

	// SetPaymentResult records a gateway callback against the booking that
	// carries the given order reference. Returns (nil, nil) when no booking
	// matches; the caller treats that as a no-op acknowledgment.
	SetPaymentResult(ctx context.Context, orderID, paymentID, status string) (*models.Booking, error)

	// Release frees a booking: isBooked=false, paymentStatus back to pending.
	Release(ctx context.Context, bookingID, userID string) (*models.Booking, error)
}

// PendingUpdate carries the fields overwritten when a booking attempt reuses
// an existing pending row.
type PendingUpdate struct {
	FirstName      string
	LastName       string
	PhoneNo        string
	Email          string
	StartDate      time.Time
	EndDate        time.Time
	TotalAmount    float64
	PaymentOrderID string
}

// RoomCatalog is the read-only view of the room inventory the core needs.
type RoomCatalog interface {
	// FindByID returns (nil, nil) when the room does not exist.
	FindByID(ctx context.Context, roomID string) (*models.Room, error)

	// List returns rooms not in excludeIDs, optionally filtered by type.
	List(ctx context.Context, roomType string, excludeIDs []string) ([]models.Room, error)
}

// Service implements room availability, pricing with gateway order creation,
// and payment reconciliation over injected collaborators.
type Service struct {
	store   Store
	rooms   RoomCatalog
	gateway payments.Gateway
}

func NewService(store Store, rooms RoomCatalog, gateway payments.Gateway) *Service {
	return &Service{store: store, rooms: rooms, gateway: gateway}
}

// Request is a validated booking request body.
type Request struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	PhoneNo   string `json:"phone_no"`
	Email     string `json:"email"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (req Request) complete() bool {
	return req.FirstName != "" && req.LastName != "" && req.PhoneNo != "" &&
		req.Email != "" && req.StartDate != "" && req.EndDate != ""
}

// Result is the outcome of a successful booking attempt.
type Result struct {
	Room        *models.Room    `json:"RoomData"`
	Booking     *models.Booking `json:"RoomBookingData"`
	OrderID     string          `json:"-"`
	OrderAmount float64         `json:"-"` // major units
	Updated     bool            `json:"-"`
}

// CancelResult reports a completed cancellation and its refund.
type CancelResult struct {
	RefundID     string  `json:"refundId"`
	RefundAmount float64 `json:"refundAmount"` // major units
}

// BookingView joins a booking with its room for listing responses.
type BookingView struct {
	models.Booking
	Room *models.Room `json:"room,omitempty"`
}

// IsRangeFree reports whether no authoritative booking for the room
// intersects [start, end]. excludeBookingID, when non-empty, is ignored in
// the check (used when re-validating an existing booking's own range).
func (s *Service) IsRangeFree(ctx context.Context, roomID string, start, end time.Time, excludeBookingID string) (bool, error) {
	existing, err := s.store.Authoritative(ctx, roomID, start, end)
	if err != nil {
		return false, err
	}
	for _, b := range existing {
		if b.BookingID != excludeBookingID {
			return false, nil
		}
	}
	return true, nil
}

// BookRoom runs the full booking attempt: date validation, room lookup,
// availability check, pricing, gateway order creation, and the single
// create-or-overwrite of the caller's pending row. Exactly one gateway order
// is created per invocation; retried requests reuse the pending row but not
// the prior order.
func (s *Service) BookRoom(ctx context.Context, userID, roomID string, req Request) (*Result, error) {
	start, end, err := parseRequestDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	free, err := s.IsRangeFree(ctx, roomID, start, end, "")
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrRoomAlreadyBooked
	}

	amount := float64(Nights(start, end)) * room.Amount
	order, err := s.gateway.CreateOrder(ctx, toMinorUnits(amount), currency, "room_booking_receipt")
	if err != nil {
		return nil, err
	}

	// One pending row per (user, room): a retried attempt overwrites the
	// existing row instead of creating a duplicate.
	pending, err := s.store.FindPending(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		updated, err := s.store.OverwritePending(ctx, pending.BookingID, PendingUpdate{
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			PhoneNo:        req.PhoneNo,
			Email:          req.Email,
			StartDate:      start,
			EndDate:        end,
			TotalAmount:    amount,
			PaymentOrderID: order.ID,
		})
		if err != nil {
			return nil, err
		}
		return &Result{Room: room, Booking: updated, OrderID: order.ID, OrderAmount: amount, Updated: true}, nil
	}

	b := models.Booking{
		BookingID:      "b" + utils.GenerateID(14),
		UserID:         userID,
		RoomID:         roomID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		PhoneNo:        req.PhoneNo,
		Email:          req.Email,
		StartDate:      start,
		EndDate:        end,
		TotalAmount:    amount,
		IsBooked:       true,
		PaymentOrderID: order.ID,
		PaymentStatus:  models.StatusPending,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, err
	}
	return &Result{Room: room, Booking: &b, OrderID: order.ID, OrderAmount: amount}, nil
}

// ConfirmPayment reconciles a gateway callback against the booking holding
// the order reference. The callback is trusted by order reference alone; an
// unknown reference is acknowledged as a no-op with a nil booking.
func (s *Service) ConfirmPayment(ctx context.Context, orderID, paymentID, status string) (*models.Booking, error) {
	return s.store.SetPaymentResult(ctx, orderID, paymentID, status)
}

// Cancel releases an owned booking and requests a refund of its payment.
// The room is freed before the refund call, so a refund failure leaves the
// booking released and is surfaced as ErrRefundFailed for the operator to
// resolve out of band.
func (s *Service) Cancel(ctx context.Context, bookingID, userID string) (*CancelResult, error) {
	b, err := s.store.FindOwned(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}

	if _, err := s.store.Release(ctx, bookingID, userID); err != nil {
		return nil, err
	}

	refund, err := s.gateway.Refund(ctx, b.PaymentID)
	if err != nil {
		return nil, ErrRefundFailed
	}
	return &CancelResult{
		RefundID:     refund.ID,
		RefundAmount: float64(refund.Amount) / 100,
	}, nil
}

// BookingsInRange lists authoritative bookings intersecting [start, end],
// joined with their rooms. roomType, when set, keeps only bookings whose
// room matches.
func (s *Service) BookingsInRange(ctx context.Context, startStr, endStr, roomType string) ([]BookingView, error) {
	start, end, err := parseRequestDates(startStr, endStr)
	if err != nil {
		return nil, err
	}

	matches, err := s.store.Authoritative(ctx, "", start, end)
	if err != nil {
		return nil, err
	}
	return s.joinRooms(ctx, matches, roomType)
}

// AvailableRooms lists rooms with no authoritative booking intersecting
// [start, end], optionally filtered by room type.
func (s *Service) AvailableRooms(ctx context.Context, startStr, endStr, roomType string) ([]models.Room, error) {
	start, end, err := parseRequestDates(startStr, endStr)
	if err != nil {
		return nil, err
	}

	booked, err := s.store.Authoritative(ctx, "", start, end)
	if err != nil {
		return nil, err
	}
	blocked := make([]string, 0, len(booked))
	for _, b := range booked {
		blocked = append(blocked, b.RoomID)
	}
	return s.rooms.List(ctx, roomType, blocked)
}

// UserBookings lists the caller's authoritative bookings with room details.
// email, when non-empty, narrows to rows booked under that guest email.
func (s *Service) UserBookings(ctx context.Context, userID, email string) ([]BookingView, error) {
	matches, err := s.store.FindPaidByUser(ctx, userID, email)
	if err != nil {
		return nil, err
	}
	return s.joinRooms(ctx, matches, "")
}

func (s *Service) joinRooms(ctx context.Context, bookings []models.Booking, roomType string) ([]BookingView, error) {
	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		room, err := s.rooms.FindByID(ctx, b.RoomID)
		if err != nil {
			return nil, err
		}
		if room == nil {
			continue // booking references a vanished room; drop from listings
		}
		if roomType != "" && room.RoomType != roomType {
			continue
		}
		views = append(views, BookingView{Booking: b, Room: room})
	}
	return views, nil
}

func parseRequestDates(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := ParseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if err := ValidateRange(start, end, StartOfToday()); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
