package service

import "github.com/deppfellow/trip-booking/internal/errs"

// Error codes of business rule violations.
const (
	CodeClientNotFound          = "CLIENT_NOT_FOUND"
	CodeClientHasTrips          = "CLIENT_HAS_TRIPS"
	CodeTripNotAvailable        = "TRIP_NOT_AVAILABLE"
	CodeClientAlreadyRegistered = "CLIENT_ALREADY_REGISTERED"
)

// Client-facing messages, kept stable for API consumers.
const (
	MsgClientNotFound          = "Client not found"
	MsgClientHasTrips          = "Cannot delete client with assigned trips"
	MsgTripNotAvailable        = "Trip does not exist or has already started"
	MsgClientAlreadyRegistered = "Client is already registered for this trip"
)

func errClientNotFound() error {
	code := CodeClientNotFound
	return errs.NewNotFoundError(MsgClientNotFound, true, &code)
}

func errClientHasTrips() error {
	code := CodeClientHasTrips
	return errs.NewBadRequestError(MsgClientHasTrips, true, &code, nil)
}

func errTripNotAvailable() error {
	code := CodeTripNotAvailable
	return errs.NewBadRequestError(MsgTripNotAvailable, true, &code, nil)
}

func errClientAlreadyRegistered() error {
	code := CodeClientAlreadyRegistered
	return errs.NewBadRequestError(MsgClientAlreadyRegistered, true, &code, nil)
}
