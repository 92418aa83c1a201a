package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind классифицирует ошибку для клиента API
type Kind string

const (
	KindTokenNotFound      Kind = "token_not_found"
	KindProtocol           Kind = "protocol_error"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindTwoFactorRequired  Kind = "two_factor_required"
	KindTwoFactorRejected  Kind = "two_factor_rejected"
	KindInvalidSession     Kind = "invalid_or_expired_session"
	KindUpstream           Kind = "upstream_error"
	KindParse              Kind = "parse_error"
	KindInvalidRequest     Kind = "invalid_request"
	KindUploadRejected     Kind = "upload_rejected"
	KindInternal           Kind = "internal_error"
)

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrTokenNotFound      = &Error{Kind: KindTokenNotFound}
	ErrProtocol           = &Error{Kind: KindProtocol}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials}
	ErrTwoFactorRequired  = &Error{Kind: KindTwoFactorRequired}
	ErrTwoFactorRejected  = &Error{Kind: KindTwoFactorRejected}
	ErrInvalidSession     = &Error{Kind: KindInvalidSession}
	ErrUpstream           = &Error{Kind: KindUpstream}
	ErrParse              = &Error{Kind: KindParse}
	ErrInvalidRequest     = &Error{Kind: KindInvalidRequest}
	ErrUploadRejected     = &Error{Kind: KindUploadRejected}
)

type Error struct {
	Kind    Kind
	Message string
	// StatusCode - HTTP статус ответа upstream, если он был
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Upstream builds an UpstreamError carrying the upstream status code.
func Upstream(statusCode int, message string) *Error {
	return &Error{Kind: KindUpstream, Message: message, StatusCode: statusCode}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the client-facing message for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Message != "" {
			return e.Message
		}
		return string(e.Kind)
	}
	return "internal server error"
}

// HTTPStatus maps err to the status returned by the API.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidCredentials, KindTwoFactorRequired, KindTwoFactorRejected, KindInvalidSession:
		return http.StatusUnauthorized
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindUploadRejected:
		return http.StatusUnprocessableEntity
	case KindTokenNotFound, KindProtocol, KindUpstream, KindParse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
