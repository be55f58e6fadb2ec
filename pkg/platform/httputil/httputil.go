// Package httputil implements the JSON response envelope shared by every
// endpoint: {"success": true, "data": ...} on success, with an optional
// "total" on list responses, and {"success": false, "error": {...}} on
// failure.
package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	domainerrors "investdesk/pkg/domain-errors"
)

type envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Total   *int      `json:"total,omitempty"`
	Message string    `json:"message,omitempty"`
	Error   *errBody  `json:"error,omitempty"`
}

type errBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteData responds with a success envelope wrapping data.
func WriteData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// WriteList responds with a success envelope carrying a list and its total.
func WriteList(w http.ResponseWriter, data any, total int) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Total: &total})
}

// WriteMessage responds with a success envelope carrying data and a
// human-readable message.
func WriteMessage(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, envelope{Success: true, Data: data, Message: message})
}

// WriteError maps err's domain code to an HTTP status and responds with an
// error envelope. Internal failure details never leak to the client.
func WriteError(w http.ResponseWriter, err error) {
	code := domainerrors.CodeOf(err)
	message := err.Error()
	if code == domainerrors.CodeInternal || code == domainerrors.CodeStorageIO {
		message = "internal server error"
	}
	writeJSON(w, domainerrors.HTTPStatus(code), envelope{
		Success: false,
		Error:   &errBody{Code: string(code), Message: message},
	})
}

// Decode parses the request body into T, responding with a bad-request
// envelope on malformed JSON. The bool reports whether the handler should
// proceed.
func Decode[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (T, bool) {
	var v T
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&v); err != nil {
		if logger != nil {
			logger.WarnContext(r.Context(), "malformed request body", "error", err.Error())
		}
		WriteError(w, domainerrors.Wrap(err, domainerrors.CodeBadRequest, "malformed JSON body"))
		var zero T
		return zero, false
	}
	return v, true
}
