package server

import (
	"bufio"
	"net/url"
	"strings"
)

const (
	httpVersion  = "HTTP/1.1"
	requestParts = 3
)

// Request is a parsed request line, immutable for the rest of the
// connection's lifetime.
type Request struct {
	Method  string
	Path    string
	Version string
}

// parseRequest reads and validates one request line. The protocol is a
// deliberate subset of HTTP/1.1: header lines are never read or
// validated, a connection carries exactly one request, and only GET is
// served.
func parseRequest(r *bufio.Reader) (Request, error) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return Request{}, errBadRequest
	}

	parts := strings.Fields(line)
	if len(parts) != requestParts {
		return Request{}, errBadRequest
	}

	target, err := url.Parse(parts[1])
	if err != nil {
		return Request{}, errBadRequest
	}

	req := Request{
		Method:  parts[0],
		Path:    target.Path,
		Version: parts[2],
	}

	if req.Version != httpVersion {
		return Request{}, errVersionNotSupported
	}
	if req.Method != "GET" {
		return Request{}, errNotImplemented
	}

	return req, nil
}
