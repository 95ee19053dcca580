package exchange

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidAmount is returned by Convert when the amount of money
// does not parse as a decimal number.
var ErrInvalidAmount = errors.New("Amount of money is not correct")

// NotSupportedError is returned when no exchange rate is known for
// the requested currency.
type NotSupportedError struct {
	Currency string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("Exchange rate for %s is not supported", e.Currency)
}

// UpstreamError is returned when a rate source answers with a
// non-success status.
type UpstreamError struct {
	Service     string
	Code        string
	Description string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Request to the %s server is failed. Error %s: %s",
		e.Service, e.Code, e.Description)
}
