package httputil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/reactorsim/pkg/errors"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes err as an ErrorBody with the status from StatusFor.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	body := ErrorBody{Code: errors.GetCode(err), Message: errors.UserMessage(err)}
	if body.Code == "" || status == http.StatusInternalServerError {
		body = ErrorBody{Code: errors.ErrCodeInternal, Message: "internal error"}
	}
	WriteJSON(w, status, body)
}

// WriteBytes writes a binary body with its content type.
func WriteBytes(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// QueryProgress reads a progress parameter, falling back to def when the
// parameter is absent.
func QueryProgress(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return errors.ParseProgress(raw)
}

// QueryScale reads a raster scale parameter, falling back to def when the
// parameter is absent.
func QueryScale(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	s, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidScale, err, "invalid scale %q", raw)
	}
	if err := errors.ValidateScale(s); err != nil {
		return 0, err
	}
	return s, nil
}
