package httputil

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/errors"
)

// DefaultMaxBodyBytes bounds request bodies read by [DecodeJSON].
const DefaultMaxBodyBytes = 8 << 20

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// DecodeJSON decodes a single JSON value from r.Body, reading at most limit
// bytes (DefaultMaxBodyBytes when limit <= 0). Unknown fields are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any, limit int64) error {
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	dec.DisallowUnknownFields()
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return errors.New(errors.ErrCodeInvalidRequest, "request body is empty")
		}
		return errors.Wrap(errors.ErrCodeInvalidRequest, err, "invalid request body")
	}
	if dec.More() {
		return errors.New(errors.ErrCodeInvalidRequest, "request body must contain a single JSON value")
	}
	return nil
}

// RespondJSON writes v as JSON with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError writes err as a JSON error envelope and returns the status
// used, so callers can decide whether to log.
func RespondError(w http.ResponseWriter, err error) int {
	status := StatusFor(err)
	code := errors.GetCode(err)
	msg := Message(err)
	if status >= http.StatusInternalServerError && code != errors.ErrCodeTimeout && code != errors.ErrCodeUnavailable {
		code = errors.ErrCodeInternal
		msg = "internal server error"
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}
	RespondJSON(w, status, ErrorBody{Error: ErrorDetail{Code: code, Message: msg}})
	return status
}

// StatusFor maps an error to an HTTP status code.
func StatusFor(err error) int {
	switch code := errors.GetCode(err); {
	case code == errors.ErrCodeInvalidRequest, code == errors.ErrCodeInvalidFormat,
		code == errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.IsValidation(err):
		return http.StatusUnprocessableEntity
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case code == errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case code == errors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing text of err without its code prefix.
func Message(err error) string {
	code := errors.GetCode(err)
	if code == "" {
		return err.Error()
	}
	msg := err.Error()
	if i := strings.Index(msg, string(code)+": "); i >= 0 {
		return msg[i+len(code)+2:]
	}
	return errors.UserMessage(err)
}
