package exchange

import (
	"time"

	"github.com/rg-golubkov/currency-converter/internal/entity/currency"
)

// cacheEntry owns one rate table together with its expiry instant.
// Entries are replaced wholesale on refresh, never mutated in place.
type cacheEntry struct {
	table     currency.RateTable
	expiresAt time.Time
}

func newCacheEntry(table currency.RateTable, lifetime time.Duration) cacheEntry {
	e := cacheEntry{table: table}
	if lifetime > 0 {
		e.expiresAt = time.Now().Add(lifetime)
	}
	return e
}

// fresh reports whether the entry can still be served. An entry
// without an expiry instant is always stale.
func (e cacheEntry) fresh(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.Before(e.expiresAt)
}
