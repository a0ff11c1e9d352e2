package gazette

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JaimeStill/boletin/internal/classify"
	"github.com/JaimeStill/boletin/internal/sectors"
)

// Domain errors for gazette operations.
var (
	ErrInvalidID    = errors.New("invalid document id")
	ErrInvalidDate  = errors.New("invalid date, expected YYYYMMDD")
	ErrMissingQuery = errors.New("search query required")
	ErrRejected     = errors.New("upstream content rejected")
	ErrFetchFailed  = errors.New("upstream fetch failed")
	ErrNoPDF        = errors.New("document has no pdf")
	ErrNotPDF       = errors.New("upstream pdf is not a pdf document")
)

// RejectedError reports a payload that classification marked invalid.
type RejectedError struct {
	Reason classify.Reason
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrRejected, e.Reason)
}

// Is matches ErrRejected.
func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}

func rejected(r classify.Result) error {
	return &RejectedError{Reason: r.Reason()}
}

// ReasonOf returns the classification reason carried by err, if any.
func ReasonOf(err error) classify.Reason {
	var re *RejectedError
	if errors.As(err, &re) {
		return re.Reason
	}
	return ""
}

// MapHTTPStatus maps gazette domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrMissingQuery),
		errors.Is(err, sectors.ErrUnknownSector):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoPDF):
		return http.StatusNotFound
	case errors.Is(err, ErrRejected),
		errors.Is(err, ErrFetchFailed),
		errors.Is(err, ErrNotPDF):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
