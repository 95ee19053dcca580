package server

import "fmt"

// HTTPError is a protocol-level failure that maps directly onto a
// response status.
type HTTPError struct {
	Code   int
	Reason string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d %s", e.Code, e.Reason)
}

var (
	errBadRequest          = &HTTPError{Code: 400, Reason: "Bad Request"}
	errNotFound            = &HTTPError{Code: 404, Reason: "Not Found"}
	errNotImplemented      = &HTTPError{Code: 501, Reason: "Not Implemented"}
	errVersionNotSupported = &HTTPError{Code: 505, Reason: "HTTP Version Not Supported"}
)
