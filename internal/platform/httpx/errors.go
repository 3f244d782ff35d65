// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/odyssey-erp/flextime/timestamp"
)

// ErrValidation marks malformed requests, such as a missing query parameter.
var ErrValidation = errors.New("validation failed")

// RespondError maps domain errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, timestamp.ErrUnknownFormat):
		Problem(w, http.StatusBadRequest, "Unknown Format", err.Error())
	case errors.Is(err, timestamp.ErrOutOfRange):
		Problem(w, http.StatusUnprocessableEntity, "Out Of Range", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
