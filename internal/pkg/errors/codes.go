package errors

import "net/http"

var (
	ErrInvalidGeometry = New(
		"INVALID_GEOMETRY",
		"Invalid or degenerate geometry",
		http.StatusBadRequest,
	)

	ErrInvalidTimeWindow = New(
		"INVALID_TIME_WINDOW",
		"Zone end time is before start time",
		http.StatusBadRequest,
	)

	ErrInvalidBufferDistance = New(
		"INVALID_BUFFER_DISTANCE",
		"Buffer distance must be non-negative",
		http.StatusBadRequest,
	)

	ErrZoneNotFound = New(
		"ZONE_NOT_FOUND",
		"Zone not found",
		http.StatusNotFound,
	)

	ErrRouteNotFound = New(
		"ROUTE_NOT_FOUND",
		"Route not found",
		http.StatusNotFound,
	)

	ErrNotificationNotFound = New(
		"NOTIFICATION_NOT_FOUND",
		"Notification not found",
		http.StatusNotFound,
	)

	ErrFavoriteNotFound = New(
		"FAVORITE_NOT_FOUND",
		"Route is not in favorites",
		http.StatusNotFound,
	)

	ErrFavoriteExists = New(
		"FAVORITE_EXISTS",
		"Route is already in favorites",
		http.StatusBadRequest,
	)

	ErrEmailTaken = New(
		"EMAIL_TAKEN",
		"Email already registered",
		http.StatusBadRequest,
	)

	ErrInvalidCredentials = New(
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		http.StatusUnauthorized,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Authentication required",
		http.StatusUnauthorized,
	)

	ErrForbidden = New(
		"FORBIDDEN",
		"Operation not allowed for this account",
		http.StatusForbidden,
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
