package exchange

import (
	"context"
	"sync"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rg-golubkov/currency-converter/internal/entity/currency"
	"github.com/rg-golubkov/currency-converter/internal/logger"
)

var one = decimal.NewFromInt(1)

type ratesFetcher interface {
	Fetch(ctx context.Context) (currency.RateTable, error)
}

// Service answers rate lookups from an in-memory table pulled from an
// upstream fetcher. The table is refreshed lazily: the first call that
// finds the cache stale fetches a new table while holding the lock, so
// at most one upstream request is in flight at a time and concurrent
// callers share its result.
type Service struct {
	fetcher  ratesFetcher
	lifetime time.Duration

	mu    sync.Mutex
	cache cacheEntry
}

// NewService creates a rate provider on top of fetcher. A zero
// lifetime disables caching: every call refreshes the table.
func NewService(fetcher ratesFetcher, lifetime time.Duration) *Service {
	return &Service{
		fetcher:  fetcher,
		lifetime: lifetime,
	}
}

// GetRate returns the current rate between base and target. Rates are
// stored relative to one reference currency, so one of the two codes
// must be the reference currency of the fetched table.
func (s *Service) GetRate(ctx context.Context, base, target string) (decimal.Decimal, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "getRate")
	defer span.Finish()
	span.SetTag("base", base)
	span.SetTag("target", target)

	table, err := s.freshTable(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if rates, ok := table[base]; ok {
		rate, ok := rates[target]
		if !ok {
			return decimal.Decimal{}, &NotSupportedError{Currency: target}
		}
		return one.Div(rate), nil
	}

	if rates, ok := table[target]; ok {
		if rate, ok := rates[base]; ok {
			return rate, nil
		}
	}

	return decimal.Decimal{}, &NotSupportedError{Currency: base}
}

// freshTable returns the cached table, refreshing it first when it is
// stale. The lock is released before any rate arithmetic happens.
func (s *Service) freshTable(ctx context.Context) (currency.RateTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache.fresh(time.Now()) {
		logger.Info("rates cache hit")
		return s.cache.table, nil
	}

	logger.Info("rates cache miss")
	table, err := s.fetcher.Fetch(ctx)
	if err != nil {
		// The stale entry is kept as is, the next call retries.
		return nil, errors.Wrap(err, "refresh rates")
	}

	s.cache = newCacheEntry(table, s.lifetime)
	logger.Info("rates cache refreshed", zap.Duration("lifetime", s.lifetime))

	return table, nil
}
