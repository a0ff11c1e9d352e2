package archive

import (
	"errors"
	"net/http"
)

// Domain errors for archive operations.
var (
	ErrNotFound  = errors.New("archived document not found")
	ErrInvalidID = errors.New("invalid document id")
)

// MapHTTPStatus maps archive domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidID) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
