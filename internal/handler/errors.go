package handler

import (
	"errors"
	"net/http"

	"github.com/gustavopolonio/nlw-journey/internal/api"
	"github.com/gustavopolonio/nlw-journey/internal/domain"
)

const msgInternal = "Internal server error"

// errBadParam marks a path or query parameter that could not be parsed.
var errBadParam = errors.New("invalid parameter")

// fail writes the error response for err. notFound is the message used when
// err wraps domain.ErrNotFound, because the handler is the layer that knows
// what was being looked up. Unexpected errors are logged and answered with a
// generic 500 so internals never leak to clients.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var (
		verr   *domain.ValidationError
		tooBig *http.MaxBytesError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, api.ErrorResponse{Message: verr.Message, Errors: verr.Fields})
	case errors.Is(err, domain.ErrValidation):
		writeMessage(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, notFound)
	case errors.As(err, &tooBig):
		writeMessage(w, http.StatusRequestEntityTooLarge, "Request body too large")
	case errors.Is(err, errBadParam), errors.Is(err, errBadBody):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestID(r),
			"error", err,
		)
		writeMessage(w, http.StatusInternalServerError, msgInternal)
	}
}

// invalidInput is the 422 response for a body that failed field validation.
func invalidInput(fields domain.FieldErrors) *domain.ValidationError {
	return &domain.ValidationError{Message: "Invalid input", Fields: fields}
}
