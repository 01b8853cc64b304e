package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the envelope every failed request returns.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// RespondError writes a standardized error response. An empty message uses
// the fixed message for status.
func RespondError(w http.ResponseWriter, status int, message string) {
	if message == "" {
		message = StatusMessage(status)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   status,
		Message: message,
	})
}

// RespondBadRequest writes a 400 with the given or default message.
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondNotFound writes a 404 with the given or default message.
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondMethodNotAllowed writes a 405.
func RespondMethodNotAllowed(w http.ResponseWriter) {
	RespondError(w, http.StatusMethodNotAllowed, "")
}

// RespondUnprocessable writes a 422.
func RespondUnprocessable(w http.ResponseWriter) {
	RespondError(w, http.StatusUnprocessableEntity, "")
}

// RespondInternalError writes a 500. The cause is never echoed.
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, "")
}

// NotFoundHandler answers unknown routes.
func NotFoundHandler(w http.ResponseWriter, _ *http.Request) {
	RespondNotFound(w, "")
}

// MethodNotAllowedHandler answers known routes hit with an unsupported method.
func MethodNotAllowedHandler(w http.ResponseWriter, _ *http.Request) {
	RespondMethodNotAllowed(w)
}
