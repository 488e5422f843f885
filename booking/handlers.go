package booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"unwind/mq"
	"unwind/utils"

	"github.com/julienschmidt/httprouter"
)

// BookRoomHandler handles POST /api/bookings/room/:rid.
func (s *Service) BookRoomHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roomID := ps.ByName("rid")
	userID := utils.GetUserIDFromRequest(r)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if !req.complete() {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required booking fields.")
		return
	}

	result, err := s.BookRoom(r.Context(), userID, roomID, req)
	if err != nil {
		writeBookingError(w, err)
		return
	}

	message := "Room Booked Successfully."
	event := mq.EventBookingCreated
	if result.Updated {
		message = "Room Booking Updated Successfully."
		event = mq.EventBookingUpdated
	}
	mq.Emit(r.Context(), event, mq.Event{
		BookingID: result.Booking.BookingID,
		RoomID:    roomID,
		UserID:    userID,
		Amount:    result.OrderAmount,
	})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success":            true,
		"status":             http.StatusCreated,
		"message":            message,
		"data":               result,
		"paymentOrderId":     result.OrderID,
		"paymentOrderAmount": result.OrderAmount,
	})
}

// PaymentStatusHandler handles POST /api/bookings/payment/:oid, the gateway
// callback. An unknown order reference still acknowledges with 200 and null
// data; the callback must never be retried as an error.
func (s *Service) PaymentStatusHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("oid")

	var body struct {
		PaymentStatus string `json:"paymentStatus"`
		PaymentID     string `json:"paymentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	updated, err := s.ConfirmPayment(r.Context(), orderID, body.PaymentID, body.PaymentStatus)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}
	if updated != nil {
		mq.Emit(r.Context(), mq.EventPaymentConfirmed, mq.Event{
			BookingID: updated.BookingID,
			RoomID:    updated.RoomID,
			UserID:    updated.UserID,
			Amount:    updated.TotalAmount,
		})
	}
	utils.SendResponse(w, http.StatusOK, updated, "Success", nil)
}

// SearchHandler handles POST /api/bookings/search: authoritative bookings
// intersecting a date range, optionally narrowed by room type.
func (s *Service) SearchHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		RoomType  string `json:"room_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if body.StartDate == "" || body.EndDate == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "start_date and end_date are required.")
		return
	}

	views, err := s.BookingsInRange(r.Context(), body.StartDate, body.EndDate, body.RoomType)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	if len(views) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No Room Booking Data Found.")
		return
	}
	utils.SendResponse(w, http.StatusOK, views, "Success", nil)
}

// AvailableRoomsHandler handles POST /api/bookings/available.
func (s *Service) AvailableRoomsHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		RoomType  string `json:"room_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if body.StartDate == "" || body.EndDate == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "start_date and end_date are required.")
		return
	}

	rooms, err := s.AvailableRooms(r.Context(), body.StartDate, body.EndDate, body.RoomType)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	if len(rooms) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No available rooms found.")
		return
	}
	utils.SendResponse(w, http.StatusOK, rooms, "Success", nil)
}

// MyBookingsHandler handles GET /api/bookings/mine.
func (s *Service) MyBookingsHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	views, err := s.UserBookings(r.Context(), userID, "")
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
		return
	}
	if len(views) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No Room Booking Data Found.")
		return
	}
	utils.SendResponse(w, http.StatusOK, views, "Success", nil)
}

// CancelHandler handles PATCH /api/bookings/:rbid/cancel.
func (s *Service) CancelHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID := ps.ByName("rbid")
	userID := utils.GetUserIDFromRequest(r)

	result, err := s.Cancel(r.Context(), bookingID, userID)
	if err != nil {
		writeBookingError(w, err)
		return
	}

	mq.Emit(r.Context(), mq.EventBookingCancelled, mq.Event{
		BookingID: bookingID,
		UserID:    userID,
		Amount:    result.RefundAmount,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":      true,
		"status":       http.StatusOK,
		"message":      "Room booking canceled successfully",
		"refundId":     result.RefundID,
		"refundAmount": result.RefundAmount,
	})
}

// writeBookingError maps core errors onto the stable status codes and
// messages. Store and gateway failures come out as a generic 500: internal
// detail stays internal.
func writeBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrRoomAlreadyBooked):
		// Conflict is reported success-shaped; clients key off the message.
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"success": true,
			"status":  http.StatusOK,
			"message": "Room Already Booked.",
		})
	case errors.Is(err, ErrBadDate),
		errors.Is(err, ErrPastStartDate),
		errors.Is(err, ErrStartAfterEnd):
		utils.RespondWithError(w, http.StatusBadRequest, capitalized(err.Error()))
	case errors.Is(err, ErrRoomNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Room not found.")
	case errors.Is(err, ErrBookingNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Room booking data was not found.")
	case errors.Is(err, ErrRefundFailed):
		utils.RespondWithError(w, http.StatusInternalServerError, "Refund process failed.")
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error!")
	}
}

func capitalized(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
