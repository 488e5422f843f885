package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"unwind/models"
	"unwind/payments"
)

// ---------- fakes ----------

type memStore struct {
	bookings []models.Booking
}

func (m *memStore) Create(_ context.Context, b models.Booking) error {
	m.bookings = append(m.bookings, b)
	return nil
}

func (m *memStore) Authoritative(_ context.Context, roomID string, start, end time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range m.bookings {
		if roomID != "" && b.RoomID != roomID {
			continue
		}
		if b.Authoritative() && Overlaps(b.StartDate, b.EndDate, start, end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) FindPending(_ context.Context, userID, roomID string) (*models.Booking, error) {
	for i := range m.bookings {
		b := &m.bookings[i]
		if b.UserID == userID && b.RoomID == roomID && b.PaymentStatus == models.StatusPending {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindOwned(_ context.Context, bookingID, userID string) (*models.Booking, error) {
	for i := range m.bookings {
		b := &m.bookings[i]
		if b.BookingID == bookingID && b.UserID == userID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindPaidByUser(_ context.Context, userID, email string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range m.bookings {
		if b.UserID == userID && b.Authoritative() && (email == "" || b.Email == email) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) OverwritePending(_ context.Context, bookingID string, upd PendingUpdate) (*models.Booking, error) {
	for i := range m.bookings {
		b := &m.bookings[i]
		if b.BookingID == bookingID {
			b.FirstName = upd.FirstName
			b.LastName = upd.LastName
			b.PhoneNo = upd.PhoneNo
			b.Email = upd.Email
			b.StartDate = upd.StartDate
			b.EndDate = upd.EndDate
			b.TotalAmount = upd.TotalAmount
			b.IsBooked = true
			b.PaymentOrderID = upd.PaymentOrderID
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) SetPaymentResult(_ context.Context, orderID, paymentID, status string) (*models.Booking, error) {
	for i := range m.bookings {
		b := &m.bookings[i]
		if b.PaymentOrderID == orderID {
			b.PaymentID = paymentID
			b.PaymentStatus = status
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) Release(_ context.Context, bookingID, userID string) (*models.Booking, error) {
	for i := range m.bookings {
		b := &m.bookings[i]
		if b.BookingID == bookingID && b.UserID == userID {
			b.IsBooked = false
			b.PaymentStatus = models.StatusPending
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

type memCatalog struct {
	rooms []models.Room
}

func (m *memCatalog) FindByID(_ context.Context, roomID string) (*models.Room, error) {
	for _, r := range m.rooms {
		if r.RoomID == roomID {
			cp := r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCatalog) List(_ context.Context, roomType string, excludeIDs []string) ([]models.Room, error) {
	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	var out []models.Room
	for _, r := range m.rooms {
		if excluded[r.RoomID] {
			continue
		}
		if roomType != "" && r.RoomType != roomType {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// countingGateway counts orders and can be told to fail refunds.
type countingGateway struct {
	orders      int
	refunds     int
	failRefunds bool
}

func (g *countingGateway) CreateOrder(_ context.Context, amountMinor int64, currency, receipt string) (*payments.Order, error) {
	g.orders++
	return &payments.Order{
		ID:       fmt.Sprintf("order_%03d", g.orders),
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
	}, nil
}

func (g *countingGateway) Refund(_ context.Context, paymentID string) (*payments.Refund, error) {
	if g.failRefunds {
		return nil, payments.ErrGateway
	}
	g.refunds++
	return &payments.Refund{ID: "rfnd_001", Amount: 20000}, nil
}

// ---------- helpers ----------

func futureDate(daysAhead int) string {
	return StartOfToday().AddDate(0, 0, daysAhead).Format("2006-01-02")
}

func newTestService() (*Service, *memStore, *memCatalog, *countingGateway) {
	store := &memStore{}
	catalog := &memCatalog{rooms: []models.Room{
		{RoomID: "r1", RoomNo: "101", RoomType: "deluxe", Amount: 100},
		{RoomID: "r2", RoomNo: "102", RoomType: "standard", Amount: 50},
	}}
	gw := &countingGateway{}
	return NewService(store, catalog, gw), store, catalog, gw
}

func validRequest(start, end string) Request {
	return Request{
		FirstName: "Asha",
		LastName:  "Rao",
		PhoneNo:   "9876543210",
		Email:     "asha@example.com",
		StartDate: start,
		EndDate:   end,
	}
}

// ---------- pricing & order creation ----------

func TestBookRoomPricing(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	// two nights at rate 100
	res, err := svc.BookRoom(ctx, "u1", "r1", validRequest(futureDate(1), futureDate(3)))
	if err != nil {
		t.Fatalf("BookRoom: %v", err)
	}
	if res.Booking.TotalAmount != 200 {
		t.Errorf("two-night amount = %v, want 200", res.Booking.TotalAmount)
	}
	if res.OrderAmount != 200 {
		t.Errorf("order amount = %v, want 200", res.OrderAmount)
	}

	// same-day stay counts as one night
	res2, err := svc.BookRoom(ctx, "u2", "r1", validRequest(futureDate(10), futureDate(10)))
	if err != nil {
		t.Fatalf("BookRoom same-day: %v", err)
	}
	if res2.Booking.TotalAmount != 100 {
		t.Errorf("same-day amount = %v, want 100", res2.Booking.TotalAmount)
	}
}

func TestBookRoomDateValidation(t *testing.T) {
	svc, store, _, gw := newTestService()
	ctx := context.Background()

	yesterday := StartOfToday().AddDate(0, 0, -1).Format("2006-01-02")
	_, err := svc.BookRoom(ctx, "u1", "r1", validRequest(yesterday, futureDate(5)))
	if !errors.Is(err, ErrPastStartDate) {
		t.Errorf("yesterday start: got %v, want ErrPastStartDate", err)
	}

	_, err = svc.BookRoom(ctx, "u1", "r1", validRequest(futureDate(5), futureDate(2)))
	if !errors.Is(err, ErrStartAfterEnd) {
		t.Errorf("start after end: got %v, want ErrStartAfterEnd", err)
	}

	if len(store.bookings) != 0 {
		t.Errorf("rejected requests must not create rows, found %d", len(store.bookings))
	}
	if gw.orders != 0 {
		t.Errorf("rejected requests must not create gateway orders, found %d", gw.orders)
	}
}

func TestBookRoomUnknownRoom(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, err := svc.BookRoom(context.Background(), "u1", "nope", validRequest(futureDate(1), futureDate(2)))
	if !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("got %v, want ErrRoomNotFound", err)
	}
}

func TestBookRoomReusesPendingRow(t *testing.T) {
	svc, store, _, gw := newTestService()
	ctx := context.Background()

	first, err := svc.BookRoom(ctx, "u1", "r1", validRequest(futureDate(1), futureDate(3)))
	if err != nil {
		t.Fatalf("first attempt: %v", err)
	}
	second, err := svc.BookRoom(ctx, "u1", "r1", validRequest(futureDate(5), futureDate(9)))
	if err != nil {
		t.Fatalf("second attempt: %v", err)
	}

	if !second.Updated {
		t.Error("second attempt should overwrite the pending row")
	}
	if len(store.bookings) != 1 {
		t.Fatalf("want exactly one pending row per (user, room), got %d", len(store.bookings))
	}
	row := store.bookings[0]
	if row.TotalAmount != 400 { // four nights at 100
		t.Errorf("overwritten amount = %v, want 400", row.TotalAmount)
	}
	if row.PaymentOrderID == first.OrderID {
		t.Error("retried attempt must reference a fresh gateway order")
	}
	if gw.orders != 2 {
		t.Errorf("a retried request always creates a fresh gateway order, got %d orders", gw.orders)
	}
}

func TestBookRoomConflictWithAuthoritativeBooking(t *testing.T) {
	svc, store, _, _ := newTestService()
	ctx := context.Background()

	res, err := svc.BookRoom(ctx, "u1", "r1", validRequest(futureDate(1), futureDate(5)))
	if err != nil {
		t.Fatalf("BookRoom: %v", err)
	}
	if _, err := svc.ConfirmPayment(ctx, res.OrderID, "pay_001", models.StatusPaid); err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}

	_, err = svc.BookRoom(ctx, "u2", "r1", validRequest(futureDate(3), futureDate(7)))
	if !errors.Is(err, ErrRoomAlreadyBooked) {
		t.Errorf("overlapping paid booking: got %v, want ErrRoomAlreadyBooked", err)
	}
	if len(store.bookings) != 1 {
		t.Errorf("conflicting attempt must not create a row, got %d", len(store.bookings))
	}
}

// ---------- payment reconciliation ----------

func TestConfirmPaymentUnknownOrderIsNoop(t *testing.T) {
	svc, store, _, _ := newTestService()

	updated, err := svc.ConfirmPayment(context.Background(), "order_unknown", "pay_x", models.StatusPaid)
	if err != nil {
		t.Fatalf("unknown order must not error, got %v", err)
	}
	if updated != nil {
		t.Errorf("unknown order must yield a nil booking, got %+v", updated)
	}
	if len(store.bookings) != 0 {
		t.Error("no-op acknowledgment must not mutate the store")
	}
}

func TestConfirmPaymentSetsStatusAndReference(t *testing.T) {
	svc, store, _, _ := newTestService()
	ctx := context.Background()

	res, err := svc.BookRoom(ctx, "u1", "r1", validRequest(futureDate(1), futureDate(3)))
	if err != nil {
		t.Fatalf("BookRoom: %v", err)
	}
	updated, err := svc.ConfirmPayment(ctx, res.OrderID, "pay_123", models.StatusPaid)
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if updated.PaymentID != "pay_123" || updated.PaymentStatus != models.StatusPaid {
		t.Errorf("booking not reconciled: %+v", updated)
	}
	if !store.bookings[0].Authoritative() {
		t.Error("paid booking should now block the room")
	}
}

// ---------- cancellation ----------

func TestCancelForeignBookingIsNotFound(t *testing.T) {
	svc, store, _, gw := newTestService()
	ctx := context.Background()

	res, err := svc.BookRoom(ctx, "u1", "r1", validRequest(futureDate(1), futureDate(3)))
	if err != nil {
		t.Fatalf("BookRoom: %v", err)
	}
	if _, err := svc.ConfirmPayment(ctx, res.OrderID, "pay_1", models.StatusPaid); err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}

	_, err = svc.Cancel(ctx, res.Booking.BookingID, "intruder")
	if !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("foreign cancel: got %v, want ErrBookingNotFound", err)
	}
	if !store.bookings[0].Authoritative() {
		t.Error("foreign cancel must not mutate the booking")
	}
	if gw.refunds != 0 {
		t.Error("foreign cancel must not issue a refund")
	}
}

func TestCancelReleasesAndRefunds(t *testing.T) {
	svc, store, _, gw := newTestService()
	ctx := context.Background()

	res, err := svc.BookRoom(ctx, "u1", "r1", validRequest(futureDate(1), futureDate(3)))
	if err != nil {
		t.Fatalf("BookRoom: %v", err)
	}
	if _, err := svc.ConfirmPayment(ctx, res.OrderID, "pay_1", models.StatusPaid); err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}

	result, err := svc.Cancel(ctx, res.Booking.BookingID, "u1")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if result.RefundID == "" || result.RefundAmount != 200 {
		t.Errorf("unexpected refund result: %+v", result)
	}

	row := store.bookings[0]
	if row.IsBooked || row.PaymentStatus != models.StatusPending {
		t.Errorf("cancelled booking not released: %+v", row)
	}
	if gw.refunds != 1 {
		t.Errorf("want one refund, got %d", gw.refunds)
	}
}

// The room is freed before the refund call; a refund failure leaves the
// booking released. This asserts the documented partial-state outcome.
func TestCancelRefundFailureStillReleases(t *testing.T) {
	svc, store, _, gw := newTestService()
	ctx := context.Background()

	res, err := svc.BookRoom(ctx, "u1", "r1", validRequest(futureDate(1), futureDate(3)))
	if err != nil {
		t.Fatalf("BookRoom: %v", err)
	}
	if _, err := svc.ConfirmPayment(ctx, res.OrderID, "pay_1", models.StatusPaid); err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}

	gw.failRefunds = true
	_, err = svc.Cancel(ctx, res.Booking.BookingID, "u1")
	if !errors.Is(err, ErrRefundFailed) {
		t.Errorf("got %v, want ErrRefundFailed", err)
	}

	row := store.bookings[0]
	if row.IsBooked || row.PaymentStatus != models.StatusPending {
		t.Errorf("booking must be released even when the refund fails: %+v", row)
	}
}

// ---------- catalog queries ----------

func TestAvailableRoomsExcludesBlockedRoom(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	res, err := svc.BookRoom(ctx, "u1", "r1", validRequest(futureDate(1), futureDate(5)))
	if err != nil {
		t.Fatalf("BookRoom: %v", err)
	}
	if _, err := svc.ConfirmPayment(ctx, res.OrderID, "pay_1", models.StatusPaid); err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}

	rooms, err := svc.AvailableRooms(ctx, futureDate(3), futureDate(7), "")
	if err != nil {
		t.Fatalf("AvailableRooms: %v", err)
	}
	if len(rooms) != 1 || rooms[0].RoomID != "r2" {
		t.Errorf("want only r2 available, got %+v", rooms)
	}

	// pending bookings never block a room
	rooms, err = svc.AvailableRooms(ctx, futureDate(10), futureDate(12), "")
	if err != nil {
		t.Fatalf("AvailableRooms: %v", err)
	}
	if len(rooms) != 2 {
		t.Errorf("disjoint range: want both rooms, got %+v", rooms)
	}
}

func TestBookingsInRangeFiltersByRoomType(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	res, err := svc.BookRoom(ctx, "u1", "r1", validRequest(futureDate(1), futureDate(5)))
	if err != nil {
		t.Fatalf("BookRoom: %v", err)
	}
	if _, err := svc.ConfirmPayment(ctx, res.OrderID, "pay_1", models.StatusPaid); err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}

	views, err := svc.BookingsInRange(ctx, futureDate(2), futureDate(4), "deluxe")
	if err != nil {
		t.Fatalf("BookingsInRange: %v", err)
	}
	if len(views) != 1 || views[0].Room.RoomType != "deluxe" {
		t.Errorf("want one deluxe booking, got %+v", views)
	}

	views, err = svc.BookingsInRange(ctx, futureDate(2), futureDate(4), "standard")
	if err != nil {
		t.Fatalf("BookingsInRange: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("want no standard bookings, got %+v", views)
	}
}

// Two concurrent attempts for overlapping ranges can both pass the
// availability check before either payment confirms; both then become
// authoritative. This is a known, uncorrected race inherited from the
// source behavior (see DESIGN.md) — the test documents it rather than
// asserting the stricter property.
func TestDoubleBookingRaceWindowIsOpen(t *testing.T) {
	svc, store, _, _ := newTestService()
	ctx := context.Background()

	a, err := svc.BookRoom(ctx, "u1", "r1", validRequest(futureDate(1), futureDate(5)))
	if err != nil {
		t.Fatalf("first attempt: %v", err)
	}
	b, err := svc.BookRoom(ctx, "u2", "r1", validRequest(futureDate(3), futureDate(7)))
	if err != nil {
		t.Fatalf("second attempt passed availability while the first was unpaid, got %v", err)
	}

	if _, err := svc.ConfirmPayment(ctx, a.OrderID, "pay_a", models.StatusPaid); err != nil {
		t.Fatalf("confirm a: %v", err)
	}
	if _, err := svc.ConfirmPayment(ctx, b.OrderID, "pay_b", models.StatusPaid); err != nil {
		t.Fatalf("confirm b: %v", err)
	}

	authoritative := 0
	for _, row := range store.bookings {
		if row.Authoritative() {
			authoritative++
		}
	}
	if authoritative != 2 {
		t.Fatalf("expected the documented race to produce 2 authoritative bookings, got %d", authoritative)
	}
}
