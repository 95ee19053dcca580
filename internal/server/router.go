package server

import (
	"strings"

	"github.com/rg-golubkov/currency-converter/internal/exchange"
)

// Paths follow the fixed /{service}/{base}/{target}/{amount} scheme:
// a leading empty segment from the slash plus four path segments.
const pathSegments = 5

// conversionRequest carries the path parameters of one conversion.
// The amount stays a string here, the arithmetic step validates it.
type conversionRequest struct {
	base   string
	target string
	amount string
}

// Router resolves request paths to registered rate providers. The
// service map is fixed at construction, there is no global registry.
type Router struct {
	services map[string]exchange.Provider
}

func NewRouter(services map[string]exchange.Provider) *Router {
	return &Router{services: services}
}

// resolve splits path into service name and conversion parameters.
// Anything but an exact four-segment path over a known service is not
// found: no wildcards, no query parameters, no optional segments.
func (r *Router) resolve(path string) (exchange.Provider, conversionRequest, error) {
	segments := strings.Split(path, "/")
	if len(segments) != pathSegments || segments[0] != "" {
		return nil, conversionRequest{}, errNotFound
	}

	provider, ok := r.services[segments[1]]
	if !ok {
		return nil, conversionRequest{}, errNotFound
	}

	return provider, conversionRequest{
		base:   segments[2],
		target: segments[3],
		amount: segments[4],
	}, nil
}
