package gitlab

import (
	"fmt"
	"net/http"
)

// ErrorKind discriminates the failure classes of the API client.
type ErrorKind int

// Failure classes returned by the client.
const (
	// KindTransport is a network or connection level failure.
	KindTransport ErrorKind = iota
	// KindUnsuccessful is a non-2xx API response.
	KindUnsuccessful
	// KindDecode is a malformed or unexpected JSON body.
	KindDecode
	// KindConfig means neither a group nor a user scope is configured.
	KindConfig
)

// APIError is the single error type returned by the client. Kind tells the
// caller what failed, Status carries the HTTP status code when Kind is
// KindUnsuccessful, and Cause wraps the underlying error when there is one.
type APIError struct {
	Kind   ErrorKind
	Status int
	Cause  error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindUnsuccessful:
		return fmt.Sprintf("unsuccessful request: %d %s", e.Status, http.StatusText(e.Status))
	case KindConfig:
		return "invalid config: no group or user scope"
	case KindTransport:
		return fmt.Sprintf("transport error: %v", e.Cause)
	case KindDecode:
		return fmt.Sprintf("decode error: %v", e.Cause)
	default:
		return "unknown API error"
	}
}

func (e *APIError) Unwrap() error { return e.Cause }

func transportError(cause error) *APIError {
	return &APIError{Kind: KindTransport, Cause: cause}
}

func unsuccessfulError(status int) *APIError {
	return &APIError{Kind: KindUnsuccessful, Status: status}
}

func decodeError(cause error) *APIError {
	return &APIError{Kind: KindDecode, Cause: cause}
}

func configError() *APIError {
	return &APIError{Kind: KindConfig}
}
