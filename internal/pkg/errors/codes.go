package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrStopNotFound = New(
		"STOP_NOT_FOUND",
		"No bus stop matched the query",
		http.StatusNotFound,
	)

	ErrAlertNotFound = New(
		"ALERT_NOT_FOUND",
		"Alert not found",
		http.StatusNotFound,
	)

	// ErrRegionNotSupported is an informational state, distinct from a
	// transient provider failure: no credential path reaches this region.
	ErrRegionNotSupported = New(
		"REGION_NOT_SUPPORTED",
		"Bus arrival information is not available for this region",
		http.StatusUnprocessableEntity,
	)

	ErrDepartureTooLate = New(
		"DEPARTURE_TOO_LATE",
		"The bus cannot be caught on foot from the current location",
		http.StatusConflict,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
