package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/dinos/internal/domain"
	"github.com/pkordes/dinos/internal/params"
)

// ErrorResponse is the JSON body of every non-2xx answer.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
// Fields is set for validation failures only.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the human-readable message because the handler is the
// layer that knows what was being looked up.
func notFoundBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "not_found", Message: message}}
}

// validationBody returns an ErrorResponse for a domain validation failure,
// including the per-field messages when err carries them.
func validationBody(err error) ErrorResponse {
	body := ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)}}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		body.Error.Message = strings.Join(verr.FullMessages(), ", ")
		body.Error.Fields = verr.Fields
	}
	return body
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (missing top-level key, malformed body).
func requestBody(err error) ErrorResponse {
	code := "bad_request"
	if errors.Is(err, params.ErrMissingParameter) {
		code = "parameter_missing"
	}
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: unwrapMessage(err)}}
}

func internalBody() ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "internal_error", Message: "internal server error"}}
}

// unwrapMessage extracts the human-readable part from a wrapped error.
// e.g. "service.DinoService.Create: validation error: name can't be blank"
// becomes "name can't be blank".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []error{domain.ErrValidation, params.ErrMalformedBody} {
		marker := sentinel.Error() + ": "
		if i := strings.Index(msg, marker); i >= 0 && len(msg) > i+len(marker) {
			return msg[i+len(marker):]
		}
	}
	if i := strings.LastIndex(msg, ": "+params.ErrMissingParameter.Error()); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the status line is already on the wire.
	json.NewEncoder(w).Encode(v)
}
