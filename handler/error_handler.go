package handler

import (
	"errors"
	"net/http"
	"venue-review-api/common"
	"venue-review-api/service"
)

func ErrorHandlingMiddleware(next func(http.ResponseWriter, *http.Request) *common.AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := next(w, r); err != nil {
			err.Send(w)
		}
	}
}

// fromServiceError maps a service error to its response. Errors the services do
// not name, such as storage failures, are answered with 400 and logged, never echoed.
func fromServiceError(err error) *common.AppError {
	return mapServiceError(err, http.StatusBadRequest)
}

// fromLookupError is fromServiceError for reads of a single resource, where an
// unnamed failure is answered with 404.
func fromLookupError(err error) *common.AppError {
	return mapServiceError(err, http.StatusNotFound)
}

func mapServiceError(err error, fallback int) *common.AppError {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return common.NewAppError(http.StatusUnauthorized, "Unauthorized", nil)
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrDuplicateReview),
		errors.Is(err, service.ErrOwnVenueReview):
		return common.NewAppError(http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrVenueNotFound),
		errors.Is(err, service.ErrPhotoNotFound):
		return common.NewAppError(http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrUnsupportedFiletype):
		return common.NewAppError(http.StatusBadRequest, "Unsupported filetype", nil)
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrDuplicateUser),
		errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, service.ErrNoChanges):
		return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
	default:
		return common.NewAppError(fallback, http.StatusText(fallback), err)
	}
}
