package client

import "net/http"

const defaultErrorMessage = "request failed"

// RequestError is returned for every failed round trip. Server-reported
// failures carry the body's "message" field; transport failures and
// undecodable bodies carry a diagnostic message. Error() is the message
// alone so it can be shown to the user as-is.
type RequestError struct {
	Method     string
	Path       string
	StatusCode int // 0 when no response was received
	Message    string
	RequestID  string
	Err        error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Transport reports whether the failure happened before a response arrived.
func (e *RequestError) Transport() bool {
	return e.StatusCode == 0
}

// Unauthorized reports a 401 from the server.
func (e *RequestError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}
