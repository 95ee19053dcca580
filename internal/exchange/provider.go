package exchange

import (
	"context"

	"github.com/shopspring/decimal"
)

const resultScale = 2

// Provider is a single source of exchange rates.
type Provider interface {
	GetRate(ctx context.Context, base, target string) (decimal.Decimal, error)
}

// Convert exchanges amount from the base currency into the target one
// using the provider's current rate. The result is rounded to two
// fractional digits with banker's rounding.
func Convert(ctx context.Context, p Provider, base, target, amount string) (decimal.Decimal, error) {
	rate, err := p.GetRate(ctx, base, target)
	if err != nil {
		return decimal.Decimal{}, err
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}

	return value.Mul(rate).RoundBank(resultScale), nil
}
