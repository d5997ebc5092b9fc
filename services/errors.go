package services

import "errors"

// Every failure the services can produce is one of these sentinels, so the
// controllers can map each one deterministically to an HTTP status.
var (
	ErrRoomNotFound        = errors.New("room_not_found")
	ErrReservationNotFound = errors.New("reservation_not_found")
	ErrClientNotFound      = errors.New("client_not_found")

	ErrDuplicateRoomNumber = errors.New("duplicate_room_number")
	ErrDuplicateClient     = errors.New("duplicate_client")

	ErrRoomHasActiveReservations   = errors.New("room_has_active_reservations")
	ErrClientHasActiveReservations = errors.New("client_has_active_reservations")

	ErrInvalidDateRange        = errors.New("invalid_date_range")
	ErrRoomUnavailable         = errors.New("room_unavailable")
	ErrInvalidStatusTransition = errors.New("invalid_status_transition")
	ErrInvalidStatus           = errors.New("invalid_status")
	ErrInvalidRoomType         = errors.New("invalid_room_type")
	ErrInvalidRoomStatus       = errors.New("invalid_room_status")
	ErrInvalidRoomNumber       = errors.New("invalid_room_number")
	ErrInvalidCapacity         = errors.New("invalid_capacity")
	ErrInvalidDailyRate        = errors.New("invalid_daily_rate")
	ErrInvalidMonthFilter      = errors.New("invalid_month_filter")
)
