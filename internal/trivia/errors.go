package trivia

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound is returned by stores when a looked-up row does not exist.
var ErrRecordNotFound = errors.New("record not found")

// Kind classifies a failed operation; the transport maps each kind to one status.
type Kind int

const (
	KindBadRequest Kind = iota + 1
	KindNotFound
	KindUnprocessable
	KindServerError
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindNotFound:
		return "not_found"
	case KindUnprocessable:
		return "unprocessable"
	case KindServerError:
		return "server_error"
	default:
		return "unknown"
	}
}

// Error is the only error type services hand back to the transport.
// Message, when set, replaces the default client-facing text; Err is the
// underlying cause and is logged, never returned to the client.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func badRequest(msg string) *Error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

func notFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func unprocessable(cause error) *Error {
	return &Error{Kind: KindUnprocessable, Err: cause}
}

func serverError(cause error) *Error {
	return &Error{Kind: KindServerError, Err: cause}
}

// KindOf reports the Kind carried by err, or KindServerError for foreign errors.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindServerError
}
