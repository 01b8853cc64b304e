package errors

import (
	"net/http"
	"strings"
)

// Fixed client-facing messages per status. Clients match on these strings.
const (
	MsgBadRequest          = "bad request"
	MsgNotFound            = "resource not found"
	MsgMethodNotAllowed    = "method not allowed"
	MsgUnprocessable       = "unprocessable"
	MsgInternalServerError = "internal server error"
	MsgUpstreamError       = "upstream error"
)

// StatusMessage returns the fixed message for status, falling back to the
// lower-cased standard status text.
func StatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return MsgBadRequest
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusMethodNotAllowed:
		return MsgMethodNotAllowed
	case http.StatusUnprocessableEntity:
		return MsgUnprocessable
	case http.StatusInternalServerError:
		return MsgInternalServerError
	case http.StatusBadGateway:
		return MsgUpstreamError
	default:
		return strings.ToLower(http.StatusText(status))
	}
}

