package booking

import "errors"

// Sentinel errors returned by the booking core. Handlers map these onto
// stable status codes; anything else is reported as a generic internal error.
var (
	ErrPastStartDate   = errors.New("invalid start date: the start date must be today or a future date")
	ErrStartAfterEnd   = errors.New("invalid date range: the start date must be before the end date")
	ErrBadDate         = errors.New("invalid date format")
	ErrRoomNotFound    = errors.New("room not found")
	ErrBookingNotFound = errors.New("room booking data was not found")

	// ErrRoomAlreadyBooked is the conflict case. The HTTP layer reports it
	// as a success-shaped "Room Already Booked." response, matching the
	// long-standing client contract.
	ErrRoomAlreadyBooked = errors.New("room already booked")

	// ErrRefundFailed marks the reconciliation gap where the booking has
	// already been released but the gateway refund did not go through.
	ErrRefundFailed = errors.New("refund process failed")
)
