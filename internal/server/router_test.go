package server

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rg-golubkov/currency-converter/internal/exchange"
)

type stubProvider struct {
	rate decimal.Decimal
	err  error
}

func (p stubProvider) GetRate(_ context.Context, _, _ string) (decimal.Decimal, error) {
	return p.rate, p.err
}

func Test_Resolve_ShouldDispatchToRegisteredService(t *testing.T) {
	registered := stubProvider{rate: decimal.NewFromInt(2)}
	router := NewRouter(map[string]exchange.Provider{"cbr": registered})

	provider, conv, err := router.resolve("/cbr/rub/usd/100")

	require.NoError(t, err)
	assert.Equal(t, registered, provider)
	assert.Equal(t, conversionRequest{base: "rub", target: "usd", amount: "100"}, conv)
}

func Test_Resolve_ShouldFailOnUnknownService(t *testing.T) {
	router := NewRouter(map[string]exchange.Provider{"cbr": stubProvider{}})

	_, _, err := router.resolve("/xyz/rub/usd/100")

	assert.ErrorIs(t, err, errNotFound)
}

func Test_Resolve_ShouldFailOnWrongArity(t *testing.T) {
	router := NewRouter(map[string]exchange.Provider{"cbr": stubProvider{}})

	for _, path := range []string{
		"",
		"/",
		"/cbr",
		"/cbr/rub/usd",
		"/cbr/rub/usd/100/extra",
	} {
		_, _, err := router.resolve(path)
		assert.ErrorIs(t, err, errNotFound, "path %q", path)
	}
}
