package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/gustavopolonio/nlw-journey/internal/api"
	"github.com/gustavopolonio/nlw-journey/internal/validation"
)

// errBadBody marks a request body that is not valid JSON for the endpoint.
var errBadBody = errors.New("invalid request body")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the client is gone if this fails; nothing left to report.
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.ErrorResponse{Message: message})
}

// decodeBody reads a JSON body into dst and runs its validation tags.
// normalize, when non-nil, runs between decoding and validation (trimming).
func decodeBody[T any](r *http.Request, dst *T, normalize func(*T)) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: body is required", errBadBody)
		}
		return fmt.Errorf("%w: %s", errBadBody, err.Error())
	}
	if normalize != nil {
		normalize(dst)
	}
	if fields := validation.Struct(dst); fields != nil {
		return invalidInput(fields)
	}
	return nil
}

// pathUUID binds the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s must be a UUID", errBadParam, name)
	}
	return id, nil
}

func requestID(r *http.Request) string {
	return chimiddleware.GetReqID(r.Context())
}
